package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/peerlearn/peerlearn-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, h *handlers.Handler) {
	// Auth (one-time email codes)
	r.Post("/api/auth/request-code", h.RequestCode)
	r.Post("/api/auth/verify", h.VerifyCode)
	r.Post("/api/auth/signout", h.SignOut)
	r.Get("/api/auth/me", h.GetMe)

	// Profile & onboarding
	r.Get("/api/profile", h.GetProfile)
	r.Patch("/api/profile", h.UpdateProfile)
	r.Post("/api/profile/onboarding", h.CompleteOnboarding)
	r.Put("/api/profile/theme", h.SetTheme)

	// Pods (directory, membership, feeds)
	r.Get("/api/pods", h.GetPods)
	r.Post("/api/pods", h.CreatePod)
	r.Post("/api/pods/{podID}/join", h.JoinPod)
	r.Post("/api/pods/{podID}/leave", h.LeavePod)
	r.Post("/api/pods/{podID}/posts", h.PostToPod)

	// Events
	r.Get("/api/events", h.GetEvents)
	r.Post("/api/events", h.CreateEvent)
	r.Post("/api/events/{eventID}/rsvp", h.RSVP)
	r.Get("/api/events/{eventID}/ics", h.DownloadEventICS)

	// Journal
	r.Get("/api/journal", h.GetJournal)
	r.Post("/api/journal", h.CreateJournalEntry)
	r.Delete("/api/journal/{entryID}", h.DeleteJournalEntry)

	// Townhall
	r.Get("/api/townhall", h.GetTownhall)
	r.Post("/api/townhall", h.Shout)

	// Matching
	r.Get("/api/matches", h.GetMatches)
	r.Post("/api/matches/compute", h.ComputeMatches)

	// Analytics (streaks & freeze)
	r.Get("/api/analytics", h.GetAnalytics)
	r.Post("/api/analytics/active", h.MarkActive)
	r.Post("/api/analytics/freeze", h.ToggleFreeze)

	// Search
	r.Get("/api/search", h.Search)

	// Snapshot (backup / restore / reset)
	r.Get("/api/snapshot", h.ExportSnapshot)
	r.Post("/api/snapshot", h.ImportSnapshot)
	r.Delete("/api/snapshot", h.DeleteAllData)

	// WebSocket endpoint for live slice updates
	r.Get("/ws/updates", h.StreamUpdates)
}
