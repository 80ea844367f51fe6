package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"nwbridge/core/config"
	"nwbridge/core/database"
	"nwbridge/core/logger"
	"nwbridge/core/server"
	"nwbridge/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd starts the read-only catalog API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion catalog over HTTP",
	Long: `Serve starts a read-only HTTP API over the conversion run catalog,
registered data interface formats, and uploaded archives. Backends that
are not configured answer 503 instead of disappearing.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		registry, err := newRegistry()
		if err != nil {
			logg.Fatal("Failed to build format registry", zap.Error(err))
		}

		deps := server.Deps{Formats: registry.Formats}

		// 3. Connect to the run catalog (optional)
		if cfg.Database.Enabled {
			if db, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional catalog database connection failed", zap.Error(err))
			} else if catalog, err := database.NewCatalog(db); err != nil {
				logg.Warn("Failed to prepare run catalog", zap.Error(err))
			} else {
				deps.Runs = catalog
				logg.Info("Serving runs from catalog database")
			}
		}

		// 4. Connect to object storage (optional)
		if cfg.Storage.Enabled {
			if client, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Optional storage connection failed", zap.Error(err))
			} else {
				deps.Archives = storage.NewUploader(client, cfg.Storage.Bucket)
			}
		}

		app := server.New(logg, cfg.Server, deps)

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
