package handlers

import (
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type RequestCodeRequest struct {
	Email string `json:"email"`
}

type RequestCodeResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
	ResendAt  int64  `json:"resendAt,omitempty"`
}

// RequestCode issues a one-time verification code for the given email.
func (h *Handler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ok, err := h.Store.RequestVerificationCode(req.Email)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "A valid email is required (or the resend cooldown is still running)")
		return
	}

	status := h.Store.VerificationStatus()
	writeJSON(w, http.StatusOK, RequestCodeResponse{
		Success:   true,
		Message:   "Verification code sent",
		ExpiresAt: status.ExpiresAt,
		ResendAt:  status.ResendAt,
	})
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

type VerifyCodeResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Auth    store.Auth `json:"auth"`
}

// VerifyCode checks a submitted code and signs the user in on a match.
func (h *Handler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ok, err := h.Store.VerifyCode(req.Code)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, VerifyCodeResponse{
			Success: false,
			Message: "Invalid or expired code",
			Auth:    h.Store.Auth(),
		})
		return
	}

	writeJSON(w, http.StatusOK, VerifyCodeResponse{
		Success: true,
		Message: "Signed in",
		Auth:    h.Store.Auth(),
	})
}

// SignOut resets the session; every other slice is preserved.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.SignOut(); err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BasicResponse{Success: true, Message: "Signed out"})
}

type MeResponse struct {
	Success bool       `json:"success"`
	Auth    store.Auth `json:"auth"`
	Name    string     `json:"name,omitempty"`
}

// GetMe reports the current session.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	auth := h.Store.Auth()
	resp := MeResponse{Success: true, Auth: auth}
	if auth.Authed {
		resp.Name = h.Store.Profile().Name
	}
	writeJSON(w, http.StatusOK, resp)
}
