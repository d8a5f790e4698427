package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type ProfileResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Profile store.Profile `json:"profile"`
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: h.Store.Profile()})
}

// UpdateProfile applies a partial profile edit.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch store.ProfilePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.Store.UpdateProfile(patch); err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Message: "Profile updated", Profile: h.Store.Profile()})
}

// CompleteOnboarding finishes the quick-setup flow.
func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var fields store.OnboardingFields
	if !decodeBody(w, r, &fields) {
		return
	}
	if err := h.Store.CompleteOnboarding(fields); err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Message: "Onboarding complete", Profile: h.Store.Profile()})
}

type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme switches the profile theme.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ok, err := h.Store.SetTheme(req.Theme)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "Unknown theme")
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Message: "Theme updated", Profile: h.Store.Profile()})
}
