package server

import (
	"context"
	"errors"

	"nwbridge/core/database"
	"nwbridge/core/logger"
	"nwbridge/core/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunStore is the slice of the catalog the API reads.
type RunStore interface {
	List(ctx context.Context) ([]database.ConversionRun, error)
	Get(ctx context.Context, id string) (*database.ConversionRun, error)
}

// ArchiveStore lists uploaded archive files.
type ArchiveStore interface {
	ListArchives(ctx context.Context) ([]string, error)
}

// Deps are the optional backends the API exposes. Nil fields turn their
// endpoints into 503 responses instead of removing the routes.
type Deps struct {
	Runs     RunStore
	Archives ArchiveStore
	// Formats lists the registered data interface formats.
	Formats func() []string
}

// New builds the catalog API application.
func New(log *zap.Logger, cfg Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(middleware.RayID())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Auth(cfg.ApiKey))

	api.Get("/formats", func(c *fiber.Ctx) error {
		if deps.Formats == nil {
			return c.JSON([]string{})
		}
		return c.JSON(deps.Formats())
	})

	api.Get("/runs", func(c *fiber.Ctx) error {
		if deps.Runs == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "run catalog is not configured",
			})
		}
		runs, err := deps.Runs.List(c.Context())
		if err != nil {
			logger.WithRayID(log, c).Error("failed to list runs", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list runs",
			})
		}
		return c.JSON(runs)
	})

	api.Get("/runs/:id", func(c *fiber.Ctx) error {
		if deps.Runs == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "run catalog is not configured",
			})
		}
		run, err := deps.Runs.Get(c.Context(), c.Params("id"))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "run not found",
			})
		}
		if err != nil {
			logger.WithRayID(log, c).Error("failed to get run", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get run",
			})
		}
		return c.JSON(run)
	})

	api.Get("/archives", func(c *fiber.Ctx) error {
		if deps.Archives == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "object storage is not configured",
			})
		}
		names, err := deps.Archives.ListArchives(c.Context())
		if err != nil {
			logger.WithRayID(log, c).Error("failed to list archives", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list archives",
			})
		}
		return c.JSON(names)
	})

	return app
}
