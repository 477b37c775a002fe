// Package server exposes the canonical table and its derived views as a
// JSON API for the dashboard front end. Values are shipped as primitives
// (ISO dates, plain decimal strings); formatting is the front end's job.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rosa-dev/rosa/internal/ledger"
)

// Server wires the ledger cache into HTTP handlers.
type Server struct {
	app   *fiber.App
	cache *ledger.Cache
	log   zerolog.Logger
}

// New creates a Server around a ledger cache.
func New(cache *ledger.Cache, log zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "rosa",
			DisableStartupMessage: true,
			ErrorHandler:          jsonErrorHandler,
		}),
		cache: cache,
		log:   log,
	}
	s.app.Use(s.requestLogger)
	s.routes()
	return s
}

// App returns the underlying fiber app, used by tests via app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API on addr until the process exits.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("serving dashboard API")
	return s.app.Listen(addr)
}

func (s *Server) routes() {
	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/summary", s.handleSummary)
	api.Get("/transactions", s.handleTransactions)
	api.Get("/totals", s.handleTotals)
	api.Get("/networth", s.handleNetWorth)
	api.Get("/categories", s.handleCategories)
	api.Get("/monthly", s.handleMonthly)
	api.Get("/daily", s.handleDaily)
	api.Get("/types", s.handleTypes)
}

// requestLogger tags every request with an ID and logs its outcome.
func (s *Server) requestLogger(c *fiber.Ctx) error {
	id := uuid.NewString()
	c.Set("X-Request-ID", id)

	start := time.Now()
	err := c.Next()

	s.log.Info().
		Str("request_id", id).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return err
}

// jsonErrorHandler renders every handler error as a JSON body instead of
// fiber's plain-text default.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(errorResponse{Error: err.Error()})
}
