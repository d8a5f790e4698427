package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type MatchesResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Matches store.Matches `json:"matches"`
}

// GetMatches returns the cached match list.
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MatchesResponse{Success: true, Matches: h.Store.Matches()})
}

// ComputeMatches recomputes pod suggestions and crews from current state.
func (h *Handler) ComputeMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Store.ComputeMatches()
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MatchesResponse{Success: true, Matches: matches})
}
