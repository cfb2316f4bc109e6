/**
 * @description
 * HTTP handlers for the insights-service.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/transfa/insights-service/internal/app"
	"github.com/transfa/insights-service/internal/domain"
	"github.com/transfa/insights-service/internal/store"
)

// Handler holds the application service that handlers will interact with.
type Handler struct {
	service *app.Service
}

// NewHandler creates a new Handler with the given service.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// matchOffersRequest is the body for POST /offers/match.
type matchOffersRequest struct {
	Metrics domain.EligibilityMetrics `json:"metrics"`
	Persona domain.PersonaType        `json:"persona"`
}

func (h *Handler) handleRunAssessment(w http.ResponseWriter, r *http.Request) {
	var snapshot domain.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.RunAssessment(r.Context(), snapshot)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedSnapshot) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("Error running assessment for user %s: %v", snapshot.UserID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, assessment)
}

func (h *Handler) handleMatchOffers(w http.ResponseWriter, r *http.Request) {
	var req matchOffersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Persona == "" {
		http.Error(w, "persona is required", http.StatusBadRequest)
		return
	}

	matches, err := h.service.MatchOffers(r.Context(), req.Metrics, req.Persona)
	if err != nil {
		log.Printf("Error matching offers for persona %s: %v", req.Persona, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, matches)
}

func (h *Handler) handleGetLatestAssessment(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "user id is required", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.LatestAssessment(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrAssessmentNotFound) {
			http.Error(w, "No assessment found", http.StatusNotFound)
			return
		}
		log.Printf("Error loading latest assessment for user %s: %v", userID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondWithJSON(w, http.StatusOK, assessment)
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
