package middleware

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Logger is the global structured logger. Production gets JSON, everything
// else gets readable text.
var Logger *slog.Logger

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
)

// requestAttrHandler decorates every record with the request ID and user ID
// carried in the context, so service- and repository-level log lines can be
// correlated with the request that caused them.
type requestAttrHandler struct {
	slog.Handler
}

func (h *requestAttrHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(UserIDKey).(uint); ok {
		r.AddAttrs(slog.Any("user_id", uid))
	}
	return h.Handler.Handle(ctx, r)
}

func init() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var inner slog.Handler
	if os.Getenv("APP_ENV") == "production" {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		inner = slog.NewTextHandler(os.Stdout, opts)
	}
	Logger = slog.New(&requestAttrHandler{inner})
}

// ContextMiddleware copies the request ID from Fiber locals into the request
// context so the context-aware logger picks it up in deeper layers.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid, ok := c.Locals("requestid").(string); ok {
			ctx := context.WithValue(c.UserContext(), RequestIDKey, rid)
			// User ID is added later by the auth middleware, which runs at
			// the route level after this chain.
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// StructuredLogger logs one line per request with method, path, status, and
// latency.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []any{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get("User-Agent")),
		}

		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			Logger.ErrorContext(c.UserContext(), "request failed", attrs...)
		} else {
			Logger.InfoContext(c.UserContext(), "request processed", attrs...)
		}
		return err
	}
}
