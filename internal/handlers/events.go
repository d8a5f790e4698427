package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peerlearn/peerlearn-backend/internal/store"
	"github.com/peerlearn/peerlearn-backend/pkg/utils"
)

type EventsResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Events  []store.Event `json:"events"`
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, EventsResponse{Success: true, Events: h.Store.Events()})
}

type CreateEventRequest struct {
	Title string `json:"title"`
	When  string `json:"when"` // RFC 3339
	PodID string `json:"podId"`
}

type CreateEventResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Event   store.Event `json:"event,omitempty"`
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	when, err := time.Parse(time.RFC3339, req.When)
	if err != nil {
		writeBadRequest(w, "when must be an RFC 3339 timestamp")
		return
	}
	event, ok, err := h.Store.CreateEvent(req.Title, when, req.PodID)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "An event title and time are required")
		return
	}
	writeJSON(w, http.StatusCreated, CreateEventResponse{Success: true, Message: "Event created", Event: event})
}

type RSVPRequest struct {
	Going *bool `json:"going"`
}

func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	going := true
	if req.Going != nil {
		going = *req.Going
	}
	ok, err := h.Store.RSVP(chi.URLParam(r, "eventID"), going)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "Unknown event or not signed in")
		return
	}
	writeJSON(w, http.StatusOK, EventsResponse{Success: true, Message: "RSVP recorded", Events: h.Store.Events()})
}

// DownloadEventICS serves an event as a calendar file.
func (h *Handler) DownloadEventICS(w http.ResponseWriter, r *http.Request) {
	event, ok := h.Store.FindEvent(chi.URLParam(r, "eventID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, BasicResponse{Success: false, Message: "Unknown event"})
		return
	}
	description := "Hosted by " + event.Host
	if event.Pod != "" {
		description += " (pod " + event.Pod + ")"
	}
	ics := utils.MakeICS(event.Title, description, event.At, time.Hour, time.Now())

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="`+utils.ICSFilename(event.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}
