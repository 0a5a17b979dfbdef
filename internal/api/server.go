package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"paperpal/internal/chat"
	"paperpal/internal/config"
	"paperpal/internal/session"
)

// GatewayFactory builds a model gateway for one request's credentials.
type GatewayFactory func(apiKey, model string) chat.Gateway

// Server is the HTTP API server for paperpal.
type Server struct {
	router   chi.Router
	sessions *session.Store
	gateway  GatewayFactory
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Store, gateway GatewayFactory, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		gateway:  gateway,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS)

	r.Get("/health", s.handleHealth)

	r.Post("/api/summarize", s.handleSummarize)
	r.Post("/api/ask", s.handleAsk)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
