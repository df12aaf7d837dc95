package handler

import (
	"net/http"
	"strconv"

	"github.com/dukerupert/memosync/internal/editor"
	"github.com/dukerupert/memosync/internal/model"
)

// The editor keeps no server-side session: each request carries the draft
// as form fields and the response renders the next state.

type editorView struct {
	Form *editor.Form
}

func (v editorView) Expanded() bool {
	return v.Form.State == editor.Expanded
}

func (h *TemplateHandler) renderEditor(w http.ResponseWriter, f *editor.Form) {
	h.renderPartial(w, "editor", editorView{Form: f})
}

func (h *TemplateHandler) postedForm(w http.ResponseWriter, r *http.Request) (*editor.Form, bool) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, "Invalid form data")
		return nil, false
	}
	return editor.FromValues(r.PostForm), true
}

func (h *TemplateHandler) EditorCollapsed(w http.ResponseWriter, r *http.Request) {
	h.renderEditor(w, editor.New())
}

func (h *TemplateHandler) EditorExpand(w http.ResponseWriter, r *http.Request) {
	f := editor.New()
	f.Expand()
	h.renderEditor(w, f)
}

func (h *TemplateHandler) EditorCancel(w http.ResponseWriter, r *http.Request) {
	h.EditorCollapsed(w, r)
}

func (h *TemplateHandler) EditorColor(w http.ResponseWriter, r *http.Request) {
	f, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	if c, ok := model.ParseColor(r.PostForm.Get("pick")); ok {
		f.SetColor(c)
	}
	h.renderEditor(w, f)
}

func (h *TemplateHandler) EditorPin(w http.ResponseWriter, r *http.Request) {
	f, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	f.TogglePin()
	h.renderEditor(w, f)
}

func (h *TemplateHandler) EditorCommit(w http.ResponseWriter, r *http.Request) {
	f, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	note, err := f.Commit(r.Context(), h.notes)
	h.afterCommit(w, r, f, note, err)
}

// EditorBlur handles a pointer press outside the expanded editor.
func (h *TemplateHandler) EditorBlur(w http.ResponseWriter, r *http.Request) {
	f, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	note, err := f.Blur(r.Context(), h.notes)
	h.afterCommit(w, r, f, note, err)
}

// EditorKey receives key presses from the title and body fields.
// Anything but the commit chord leaves the form untouched.
func (h *TemplateHandler) EditorKey(w http.ResponseWriter, r *http.Request) {
	f, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	ctrl, _ := strconv.ParseBool(r.PostForm.Get("ctrl"))
	meta, _ := strconv.ParseBool(r.PostForm.Get("meta"))
	note, err := f.Key(r.Context(), h.notes, r.PostForm.Get("key"), ctrl, meta)
	h.afterCommit(w, r, f, note, err)
}

func (h *TemplateHandler) afterCommit(w http.ResponseWriter, r *http.Request, f *editor.Form, note *model.Note, err error) {
	if err != nil {
		h.storeFailed(r, "create", err)
	}
	h.renderEditor(w, f)
	if note != nil {
		h.renderPartial(w, "notes", notesView{View: h.notes.View(r.Context()), OOB: true})
	}
}
