package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type SearchResponse struct {
	Success bool                `json:"success"`
	Query   string              `json:"query"`
	Results store.SearchResults `json:"results"`
}

// Search matches pods, posts and people against the q query parameter.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, SearchResponse{
		Success: true,
		Query:   query,
		Results: h.Store.Search(query),
	})
}
