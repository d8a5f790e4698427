package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type TownhallResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Posts   []store.Post `json:"posts"`
}

func (h *Handler) GetTownhall(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TownhallResponse{Success: true, Posts: h.Store.Townhall()})
}

type ShoutRequest struct {
	Message string `json:"message"`
}

type ShoutResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Post    store.Post `json:"post,omitempty"`
}

func (h *Handler) Shout(w http.ResponseWriter, r *http.Request) {
	var req ShoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	post, ok, err := h.Store.Shout(req.Message)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "A message is required")
		return
	}
	writeJSON(w, http.StatusCreated, ShoutResponse{Success: true, Message: "Posted", Post: post})
}
