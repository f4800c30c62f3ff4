package assessmentRouter

import (
	"encoding/json"
	"fraudrisk/history"
	"fraudrisk/util"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AssessmentsGetResponse struct {
	Assessments []util.Assessment `json:"assessments"`
	Count       int               `json:"count"`
}

func AssessmentRouter() chi.Router {

	router := chi.NewRouter()

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		assessments, errCode, err := history.Recent(r.Context(), limit)
		if err != nil {
			slog.Warn("listing assessments", "error", err)
			http.Error(w, err.Error(), errCode)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		response := AssessmentsGetResponse{
			Assessments: assessments,
			Count:       len(assessments),
		}

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	})

	router.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid assessment id", http.StatusBadRequest)
			return
		}

		assessments, errCode, err := history.Recent(r.Context(), 0)
		if err != nil {
			http.Error(w, err.Error(), errCode)
			return
		}

		for _, a := range assessments {
			if a.ID == id {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(a)
				return
			}
		}

		http.Error(w, "assessment not found", http.StatusNotFound)
	})

	return router
}
