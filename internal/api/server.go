package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/eda-game-tester/internal/runstore"
	"github.com/MJE43/eda-game-tester/internal/version"
)

// Config holds everything the HTTP service needs to play games.
type Config struct {
	GameBinary   string // path of the game executable
	SettingsPath string // settings file used when a request carries none
	Token        string // shared token for /api/v1; empty disables the check
	MaxStored    int    // registry capacity, 0 for the default
}

// Server handles HTTP requests.
type Server struct {
	cfg       Config
	store     *runstore.Store
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	return &Server{
		cfg:       cfg,
		store:     runstore.New(cfg.MaxStored),
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Batches of slow games legitimately take a while.
	r.Use(middleware.Timeout(time.Hour))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if s.cfg.Token != "" {
			r.Use(s.requireToken)
		}
		r.Post("/runs", s.handleCreateRun)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/report.html", s.handleRunReport)
		r.Delete("/runs/{id}", s.handleDeleteRun)
	})

	return r
}

// requireToken rejects requests whose X-Tester-Token header does not match
// the configured token.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Tester-Token") != s.cfg.Token {
			s.writeError(w, http.StatusUnauthorized, ErrTypeUnauthorized, "missing or invalid token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Tester-Version", version.Version)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("encode_response_failed error=%q", err)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, context map[string]interface{}) {
	s.writeJSON(w, status, APIError{
		Type:    errType,
		Message: message,
		Context: context,
	})
}
