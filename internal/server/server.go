package server

import (
	"fmt"
	"fraudrisk/config"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"
)

type Server struct {
	port      int
	cfg       config.Config
	authKeys  map[string][]byte
	logger    *slog.Logger
	metrics   *metrics
	templates *template.Template
	// sideEffectTimeout bounds history writes and alert publishing per request.
	sideEffectTimeout time.Duration
	pending           sync.WaitGroup
}

func New(cfg config.Config, authKeys map[string][]byte, logger *slog.Logger) *Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = 8080
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		port:              port,
		cfg:               cfg,
		authKeys:          authKeys,
		logger:            logger,
		metrics:           newMetrics(),
		templates:         parseTemplates(),
		sideEffectTimeout: 100 * time.Millisecond,
	}
}

func NewServer(cfg config.Config, authKeys map[string][]byte, logger *slog.Logger) *http.Server {
	return New(cfg, authKeys, logger).HTTPServer()
}

func (s *Server) HTTPServer() *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}

// Wait blocks until in-flight history writes and alerts are done.
func (s *Server) Wait() {
	s.pending.Wait()
}
