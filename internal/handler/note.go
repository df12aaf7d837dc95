package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notes"
)

// NoteHandler serves the JSON API over the note workspace. Change
// broadcasts happen in the store's subscribers, not here.
type NoteHandler struct {
	notes  *notes.Store
	logger *slog.Logger
}

func NewNoteHandler(ns *notes.Store, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, logger: logger}
}

type noteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Color    string `json:"color"`
	IsPinned bool   `json:"isPinned"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.notes.List(r.Context()))
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if model.IsBlank(req.Title, req.Content) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title or content is required"})
		return
	}

	note, err := h.notes.Create(r.Context(), req.Title, req.Content, model.Color(req.Color), req.IsPinned)
	if err != nil {
		h.writeStoreError(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.notes.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "delete", err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.TogglePin(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, "toggle pin", err)
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Recolor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	note, err := h.notes.Recolor(r.Context(), r.PathValue("id"), model.Color(req.Color))
	if err != nil {
		h.writeStoreError(w, "recolor", err)
		return
	}
	if note == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "note not found"})
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, notes.ErrInvalidColor) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "color must be one of default, red, orange, yellow, green, blue, purple, pink"})
		return
	}
	h.logger.Error("note store failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save notes"})
}
