package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notes"
	"github.com/dukerupert/memosync/internal/ui"
)

type notesView struct {
	View notes.View
	OOB  bool
}

func (h *TemplateHandler) NoteList(w http.ResponseWriter, r *http.Request) {
	h.renderPartial(w, "notes", notesView{View: h.notes.View(r.Context())})
}

func (h *TemplateHandler) NoteTogglePin(w http.ResponseWriter, r *http.Request) {
	// An unknown id comes from a stale card; refreshing the list is enough.
	if _, err := h.notes.TogglePin(r.Context(), r.PathValue("id")); err != nil {
		h.storeFailed(r, "toggle pin", err)
	}
	h.NoteList(w, r)
}

func (h *TemplateHandler) NoteRecolor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}
	color, ok := model.ParseColor(r.FormValue("color"))
	if !ok {
		h.fail(w, r, http.StatusBadRequest, "Unknown note color")
		return
	}

	if _, err := h.notes.Recolor(r.Context(), r.PathValue("id"), color); err != nil {
		h.storeFailed(r, "recolor", err)
	}
	h.NoteList(w, r)
}

// NoteConfirmDelete opens the confirmation dialog. Nothing is deleted
// until the dialog's confirm action is taken.
func (h *TemplateHandler) NoteConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	note := h.notes.Get(r.Context(), id)
	if note == nil {
		h.writeDialog(w, ui.Confirm{})
		h.renderPartial(w, "notes", notesView{View: h.notes.View(r.Context()), OOB: true})
		return
	}

	msg := "Are you sure you want to delete this note? This action cannot be undone."
	if t := strings.TrimSpace(note.Title); t != "" {
		msg = fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", t)
	}
	dialog := ui.Confirm{
		Open:          true,
		Title:         "Delete Note",
		Message:       msg,
		ConfirmText:   "Delete",
		Variant:       ui.VariantDanger,
		ConfirmURL:    "/partials/notes/" + id,
		ConfirmMethod: "delete",
		CancelURL:     "/partials/dialog/close",
	}
	h.writeDialog(w, dialog)
}

// NoteDelete removes the note, closes the dialog and swaps in the new list
// out of band.
func (h *TemplateHandler) NoteDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.storeFailed(r, "delete", err)
	}
	h.writeDialog(w, ui.Confirm{})
	h.renderPartial(w, "notes", notesView{View: h.notes.View(r.Context()), OOB: true})
}

func (h *TemplateHandler) DialogClose(w http.ResponseWriter, r *http.Request) {
	h.writeDialog(w, ui.Confirm{})
}

func (h *TemplateHandler) writeDialog(w http.ResponseWriter, c ui.Confirm) {
	html, err := c.Render()
	if err != nil {
		h.logger.Error("dialog render failed", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}
