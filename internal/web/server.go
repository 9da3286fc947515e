// Package web serves the interactive search form for pitcher starts.
//
// GET / renders the form. POST / runs one tracker pipeline and renders the
// results table, a "no results" notice, or an error or warning banner.
// The same search is also available as JSON (/api/starts) and as an
// iCalendar download (/starts.ics).
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pfrederiksen/sp-probables/internal/tracker"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server represents the web UI server
type Server struct {
	server  *http.Server
	handler *Handler
}

// NewServer creates a server listening on addr
func NewServer(addr string, t *tracker.Tracker, maxWindowDays int) *Server {
	handler := NewHandler(t, maxWindowDays)

	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter wires the routes and middleware for handler
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)

	router.HandleFunc("/", handler.Form).Methods(http.MethodGet)
	router.HandleFunc("/", handler.Search).Methods(http.MethodPost)
	router.HandleFunc("/starts.ics", handler.Calendar).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/metrics", handler.Metrics).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/starts", handler.Starts).Methods(http.MethodGet)

	return router
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
