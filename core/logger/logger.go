package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. The debug level selects the
// development profile; any other recognized level runs the production
// profile at that severity.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config
	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		if level, err := zapcore.ParseLevel(cfg.Level); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID attaches the request's ray_id from the Fiber context, when
// the middleware set one.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals("ray_id").(string); ok && id != "" {
		return l.With(zap.String("ray_id", id))
	}
	return l
}
