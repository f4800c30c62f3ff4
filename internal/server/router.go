package server

import (
	"encoding/json"
	"fraudrisk/internal/server/assessmentRouter"
	"fraudrisk/scoring"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Key-ID", "X-Signature", "X-Timestamp"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Get("/", s.IndexHandler)
	r.Post("/predict", s.PredictHandler)

	r.Route("/api", func(api chi.Router) {
		if s.cfg.Auth.Enabled {
			api.Use(AuthMiddleware(s.authKeys))
		}
		api.Post("/score", s.ScoreHandler)
		api.Get("/configuration/buckets", s.BucketsHandler)
		api.Mount("/assessments", assessmentRouter.AssessmentRouter())
	})

	return r
}

func (s *Server) BucketsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scoring.Buckets()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
