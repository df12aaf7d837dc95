package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/memosync/internal/editor"
	"github.com/dukerupert/memosync/internal/icon"
	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notes"
	"github.com/dukerupert/memosync/internal/notify"
	"github.com/dukerupert/memosync/internal/theme"
	"github.com/dukerupert/memosync/internal/ui"
	"github.com/dukerupert/memosync/internal/websocket"
	"github.com/dukerupert/memosync/web"
)

// UIOptions carries the client-side timings rendered into pages.
type UIOptions struct {
	LoadingDelay  time.Duration
	ToastDuration time.Duration
	TooltipDelay  time.Duration
}

type TemplateHandler struct {
	notes     *notes.Store
	theme     *theme.Preference
	hub       *websocket.Hub
	notifier  notify.Notifier
	templates *template.Template
	ui        UIOptions
	logger    *slog.Logger
}

func NewTemplateHandler(ns *notes.Store, tp *theme.Preference, hub *websocket.Hub, opts UIOptions, logger *slog.Logger) *TemplateHandler {
	tmpl := template.Must(template.New("").Funcs(templateFuncs(opts.TooltipDelay)).ParseFS(web.Templates, "templates/*.html"))
	return &TemplateHandler{
		notes:     ns,
		theme:     tp,
		hub:       hub,
		notifier:  notify.ContextNotifier{},
		templates: tmpl,
		ui:        opts,
		logger:    logger,
	}
}

func templateFuncs(tooltipDelay time.Duration) template.FuncMap {
	return template.FuncMap{
		"icon": icon.Render,
		"colorClass": func(c model.Color) string {
			return model.SwatchFor(c).Class
		},
		"palette": func() []model.Swatch {
			return model.Palette
		},
		"shortDate": func(t time.Time) string {
			return t.Format("Jan 2")
		},
		"notBlank": func(s string) bool {
			return strings.TrimSpace(s) != ""
		},
		// tooltip wraps trusted markup built inside templates.
		"tooltip": func(content, position string, child any) template.HTML {
			return ui.Tooltip{
				Content:  content,
				Position: ui.Position(position),
				Delay:    tooltipDelay,
			}.Wrap(template.HTML(fmt.Sprint(child)))
		},
	}
}

type category struct {
	Name   string
	Icon   string
	Count  int
	Active bool
}

// The sidebar is decorative; counts are fixed.
var categories = []category{
	{Name: "All Notes", Icon: "StickyNote", Count: 12, Active: true},
	{Name: "Search", Icon: "Search"},
	{Name: "Grid View", Icon: "LayoutGrid"},
	{Name: "Archive", Icon: "Archive", Count: 3},
	{Name: "Trash", Icon: "Trash2", Count: 5},
	{Name: "Labels", Icon: "Tags", Count: 8},
}

type pageData struct {
	Title         string
	Dark          bool
	LoadingDelay  int64
	ToastDuration int64
	Categories    []category
}

func (h *TemplateHandler) page(r *http.Request, title string) pageData {
	return pageData{
		Title:         title,
		Dark:          h.theme.Dark(r.Context(), theme.PrefersDark(r)),
		LoadingDelay:  h.ui.LoadingDelay.Milliseconds(),
		ToastDuration: h.ui.ToastDuration.Milliseconds(),
		Categories:    categories,
	}
}

// Home serves the workspace shell. The notes themselves arrive through
// the workspace partial once the loading delay has passed. Every other
// path gets the not-found page.
func (h *TemplateHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Accept-CH", theme.ClientHintHeader)
	w.Header().Add("Vary", theme.ClientHintHeader)
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	h.render(w, http.StatusOK, "home.html", h.page(r, "MemoSync"))
}

func (h *TemplateHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "not_found.html", h.page(r, "Page Not Found | MemoSync"))
}

type workspaceView struct {
	Editor editorView
	Notes  notesView
}

func (h *TemplateHandler) Workspace(w http.ResponseWriter, r *http.Request) {
	view := workspaceView{
		Editor: editorView{Form: editor.New()},
		Notes:  notesView{View: h.notes.View(r.Context())},
	}
	h.notifier.Notify(r.Context(), notify.NewSuccess("Welcome to MemoSync! Your notes are ready."))
	h.renderPartial(w, "workspace", view)
}

func (h *TemplateHandler) ThemeToggle(w http.ResponseWriter, r *http.Request) {
	dark, err := h.theme.Toggle(r.Context(), theme.PrefersDark(r))
	if err != nil {
		h.logger.Error("failed to store theme", "error", err)
		h.notifier.Notify(r.Context(), notify.NewError("Could not save your theme preference"))
	}
	broadcastTheme(h.hub, dark)

	if v, err := notify.TriggerHeader(nil, map[string]any{"theme": dark}); err == nil {
		w.Header().Set("HX-Trigger", v)
	}
	h.renderPartial(w, "theme-toggle", map[string]any{"Dark": dark})
}

// storeFailed reports a failed store call to the user and the log. Invalid
// input is the caller's problem and is not logged.
func (h *TemplateHandler) storeFailed(r *http.Request, op string, err error) {
	if errors.Is(err, notes.ErrInvalidColor) {
		h.notifier.Notify(r.Context(), notify.NewError("Unknown note color"))
		return
	}
	h.logger.Error("note store failed", "op", op, "error", err)
	h.notifier.Notify(r.Context(), notify.NewError("Could not save your notes"))
}

// fail answers an HTMX request with a status and an error toast and tells
// htmx to leave the page as it is.
func (h *TemplateHandler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.notifier.Notify(r.Context(), notify.NewError(msg))
	w.Header().Set("HX-Reswap", "none")
	w.WriteHeader(status)
}

func (h *TemplateHandler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template error", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *TemplateHandler) renderPartial(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template error", "template", name, "error", err)
		fmt.Fprintf(w, `<div class="alert alert-error">Template error</div>`)
	}
}
