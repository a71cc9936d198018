// Package server exposes the taxonomy workflow over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/ppiankov/diatax/internal/engine"
)

// Server wraps the Fiber app and the engine it serves.
type Server struct {
	App    *fiber.App
	engine *engine.Engine
	log    zerolog.Logger
}

// New creates a server with middleware and routes registered.
func New(e *engine.Engine, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName: "diatax",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
				message = fe.Message
			}
			return jsonError(c, code, message)
		},
	})

	app.Use(recover.New())
	app.Use(requestLogger(log))

	s := &Server{
		App:    app,
		engine: e,
		log:    log,
	}
	s.RegisterRoutes()
	return s
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	s.log.Info().Str("addr", addr).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.App.ShutdownWithContext(shutdownCtx)
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
