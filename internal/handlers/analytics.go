package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type AnalyticsResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Analytics store.Analytics `json:"analytics"`
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AnalyticsResponse{Success: true, Analytics: h.Store.Analytics()})
}

// MarkActive records today's activity for the streak.
func (h *Handler) MarkActive(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Store.MarkActive()
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyticsResponse{Success: true, Analytics: analytics})
}

// ToggleFreeze arms or disarms the streak freeze.
func (h *Handler) ToggleFreeze(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.Store.ToggleFreeze()
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyticsResponse{Success: true, Analytics: analytics})
}
