package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/emptrack/emptrack/internal/web/handlers"
	"github.com/emptrack/emptrack/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	port   int
	bind   string
	router *chi.Mux
}

// NewServer creates a new web server
func NewServer(store handlers.Store, port int, bind, version string) *Server {
	s := &Server{
		port:   port,
		bind:   bind,
		router: chi.NewRouter(),
	}
	s.setupRoutes(handlers.New(store, version))
	return s
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h *handlers.Handlers) {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/departments", h.Departments)
		r.Get("/departments/{id}/employees", h.DepartmentEmployees)
		r.Get("/departments/{id}/budget", h.DepartmentBudget)
		r.Get("/roles", h.Roles)
		r.Get("/employees", h.Employees)
		r.Get("/employees/{id}", h.Employee)
	})
}

// Start starts the web server and blocks until ctx is done
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.bind, s.port)

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// ReadTimeout is for reading request body
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		// IdleTimeout for keep-alive connections between requests
		IdleTimeout: 120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
