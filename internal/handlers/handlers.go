// Package handlers exposes the store's named actions over HTTP. Handlers
// never touch slice state directly; every mutation goes through an action
// so the persist-then-notify contract holds.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type Handler struct {
	Store *store.Store
	Hub   *UpdateHub
}

// New builds the handler set and wires the websocket update hub into the
// store's subscriber list.
func New(st *store.Store) *Handler {
	h := &Handler{Store: st, Hub: NewUpdateHub()}
	st.Subscribe(h.Hub.Publish)
	return h
}

// BasicResponse is the minimal action result envelope.
type BasicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeActionFailed(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, BasicResponse{
		Success: false,
		Message: "Failed to persist state: " + err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, BasicResponse{Success: false, Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeBadRequest(w, "Invalid request body")
		return false
	}
	return true
}
