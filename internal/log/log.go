// Package log provides the request-scoped action logger used across handlers.
// Entries are structured JSON via zap; when a fiber context is passed, request
// metadata (id, ip, method, path, status) is attached automatically.
package log

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init installs the process logger. Level falls back to info on a bad value.
func Init(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	logger = l
	return l, nil
}

// L returns the process logger for components that log outside a request.
func L() *zap.Logger { return logger }

func fieldsOf(c *fiber.Ctx, action string, extra map[string]any) []zap.Field {
	fs := []zap.Field{zap.String("action", action)}
	if c != nil {
		fs = append(fs,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
		)
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			fs = append(fs, zap.String("req_id", rid))
		}
	}
	for k, v := range extra {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, fieldsOf(c, action, fields)...)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Info(action, append(fieldsOf(c, action, fields), zap.String("kind", "audit"))...)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	logger.Warn(action, fieldsOf(c, action, fields)...)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	logger.Error(action, append(fieldsOf(c, action, fields), zap.Error(err))...)
}
