package middleware_test

import (
	"net/http/httptest"
	"testing"

	"nwbridge/core/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	t.Run("MissingKey", func(t *testing.T) {
		app := newApp(middleware.Auth("secret"))
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("WrongKey", func(t *testing.T) {
		app := newApp(middleware.Auth("secret"))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-API-Key", "wrong")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("CorrectKey", func(t *testing.T) {
		app := newApp(middleware.Auth("secret"))
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-API-Key", "secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("DisabledWhenEmpty", func(t *testing.T) {
		app := newApp(middleware.Auth(""))
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRayID(t *testing.T) {
	t.Run("Generated", func(t *testing.T) {
		app := newApp(middleware.RayID())
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
	})

	t.Run("Propagated", func(t *testing.T) {
		app := newApp(middleware.RayID())
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Ray-ID", "incoming-id")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "incoming-id", resp.Header.Get("X-Ray-ID"))
	})
}
