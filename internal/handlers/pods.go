package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

type PodsResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Pods    store.Pods `json:"pods"`
}

func (h *Handler) GetPods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PodsResponse{Success: true, Pods: h.Store.Pods()})
}

type CreatePodRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

type CreatePodResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Pod     store.Pod `json:"pod,omitempty"`
}

func (h *Handler) CreatePod(w http.ResponseWriter, r *http.Request) {
	var req CreatePodRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pod, ok, err := h.Store.CreatePod(req.Name, req.About)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "A pod name and a signed-in user are required")
		return
	}
	writeJSON(w, http.StatusCreated, CreatePodResponse{Success: true, Message: "Pod created", Pod: pod})
}

func (h *Handler) JoinPod(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Store.JoinPod(chi.URLParam(r, "podID"))
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "Unknown pod or not signed in")
		return
	}
	writeJSON(w, http.StatusOK, PodsResponse{Success: true, Message: "Joined", Pods: h.Store.Pods()})
}

func (h *Handler) LeavePod(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Store.LeavePod(chi.URLParam(r, "podID"))
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "Unknown pod or not signed in")
		return
	}
	writeJSON(w, http.StatusOK, PodsResponse{Success: true, Message: "Left", Pods: h.Store.Pods()})
}

type PostToPodResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Post    store.Post `json:"post,omitempty"`
}

func (h *Handler) PostToPod(w http.ResponseWriter, r *http.Request) {
	var draft store.PostDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	post, ok, err := h.Store.PostToPod(chi.URLParam(r, "podID"), draft)
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	if !ok {
		writeBadRequest(w, "Post text is required and the pod must exist")
		return
	}
	writeJSON(w, http.StatusCreated, PostToPodResponse{Success: true, Message: "Posted", Post: post})
}
