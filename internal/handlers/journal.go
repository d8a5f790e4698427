package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type JournalResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entries []store.JournalEntry `json:"entries"`
}

func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Entries: h.Store.Journal()})
}

type CreateJournalEntryResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Entry   store.JournalEntry `json:"entry,omitempty"`
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	var draft store.JournalDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	entry, ok, err := h.Store.AddJournalEntry(draft)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "A note or insight is required")
		return
	}
	writeJSON(w, http.StatusCreated, CreateJournalEntryResponse{Success: true, Message: "Entry added", Entry: entry})
}

func (h *Handler) DeleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Store.DeleteJournalEntry(chi.URLParam(r, "entryID"))
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, BasicResponse{Success: false, Message: "Unknown entry"})
		return
	}
	writeJSON(w, http.StatusOK, BasicResponse{Success: true, Message: "Entry deleted"})
}
