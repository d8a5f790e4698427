package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/peerlearn/peerlearn-backend/internal/store"
)

// maxSnapshotSize caps uploaded snapshot files at 4 MiB.
const maxSnapshotSize = 4 << 20

// ExportSnapshot serves the full state as a downloadable JSON backup.
func (h *Handler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Store.ExportSnapshot()
	if err != nil {
		writeActionFailed(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="peerlearn-backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// ImportSnapshot replaces recognized slices from an uploaded backup.
// Malformed payloads are rejected wholesale; nothing is partially applied.
func (h *Handler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotSize))
	if err != nil {
		writeBadRequest(w, "Failed to read upload")
		return
	}
	if err := h.Store.ImportSnapshot(payload); err != nil {
		if errors.Is(err, store.ErrBadSnapshot) {
			writeBadRequest(w, "Invalid JSON: the backup was not applied")
			return
		}
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BasicResponse{Success: true, Message: "Backup imported"})
}

// DeleteAllData clears every slice. The caller must pass confirm=true; the
// prompt is the UI's job, the flag proves it happened.
func (h *Handler) DeleteAllData(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeBadRequest(w, "Pass confirm=true to delete all data")
		return
	}
	if err := h.Store.DeleteAllData(); err != nil {
		writeActionFailed(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BasicResponse{Success: true, Message: "All data deleted"})
}
