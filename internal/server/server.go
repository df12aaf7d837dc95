package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/memosync/internal/handler"
	"github.com/dukerupert/memosync/internal/middleware"
	"github.com/dukerupert/memosync/internal/notes"
	"github.com/dukerupert/memosync/internal/notify"
	"github.com/dukerupert/memosync/internal/store"
	"github.com/dukerupert/memosync/internal/theme"
	ws "github.com/dukerupert/memosync/internal/websocket"
	"github.com/dukerupert/memosync/web"
)

// Options configure a Server.
type Options struct {
	UI             handler.UIOptions
	RateLimit      int
	TrustProxy     bool
	OriginPatterns []string
}

type Server struct {
	storage     store.Storage
	hub         *ws.Hub
	notes       *notes.Store
	theme       *theme.Preference
	noteH       *handler.NoteHandler
	themeH      *handler.ThemeHandler
	templateH   *handler.TemplateHandler
	rateLimiter *middleware.RateLimiter
	origins     []string
	unwatch     func()
	logger      *slog.Logger
}

func New(storage store.Storage, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	notifier := notify.ContextNotifier{Logger: logger.With("component", "notify")}

	noteStore := notes.NewStore(storage, notes.Options{
		Notifier: notifier,
		Logger:   logger.With("component", "notes"),
	})
	pref := theme.New(storage, notifier, logger.With("component", "theme"))

	return &Server{
		storage:     storage,
		hub:         hub,
		notes:       noteStore,
		theme:       pref,
		noteH:       handler.NewNoteHandler(noteStore, logger.With("component", "note")),
		themeH:      handler.NewThemeHandler(pref, hub, logger.With("component", "theme")),
		templateH:   handler.NewTemplateHandler(noteStore, pref, hub, opts.UI, logger.With("component", "template")),
		rateLimiter: middleware.NewRateLimiter(opts.RateLimit, time.Minute).TrustProxy(opts.TrustProxy),
		origins:     opts.OriginPatterns,
		unwatch:     hub.Watch(noteStore),
		logger:      logger,
	}
}

// Notes returns the note store.
func (s *Server) Notes() *notes.Store {
	return s.notes
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Close stops forwarding store events to the hub.
func (s *Server) Close() {
	s.unwatch()
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Routes that must not have their writer buffered for notifications.
	outerMux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.origins, s.logger.With("component", "websocket")))

	appMux := http.NewServeMux()
	s.registerRoutes(appMux)
	outerMux.Handle("/", notify.Middleware(s.rateLimiter.Limit(appMux)))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if _, err := s.storage.Get(ctx, theme.StorageKey); err != nil && !isNotFound(err) {
		s.logger.Warn("health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": status, "clients": s.hub.ClientCount()})
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// API routes
	mux.HandleFunc("GET /api/notes", s.noteH.List)
	mux.HandleFunc("POST /api/notes", s.noteH.Create)
	mux.HandleFunc("DELETE /api/notes/{id}", s.noteH.Delete)
	mux.HandleFunc("POST /api/notes/{id}/pin", s.noteH.TogglePin)
	mux.HandleFunc("PUT /api/notes/{id}/color", s.noteH.Recolor)
	mux.HandleFunc("GET /api/theme", s.themeH.Get)
	mux.HandleFunc("POST /api/theme/toggle", s.themeH.Toggle)

	// HTMX partials
	mux.HandleFunc("GET /partials/workspace", s.templateH.Workspace)
	mux.HandleFunc("GET /partials/notes", s.templateH.NoteList)
	mux.HandleFunc("POST /partials/notes/{id}/pin", s.templateH.NoteTogglePin)
	mux.HandleFunc("POST /partials/notes/{id}/color", s.templateH.NoteRecolor)
	mux.HandleFunc("GET /partials/notes/{id}/confirm-delete", s.templateH.NoteConfirmDelete)
	mux.HandleFunc("DELETE /partials/notes/{id}", s.templateH.NoteDelete)
	mux.HandleFunc("GET /partials/dialog/close", s.templateH.DialogClose)

	mux.HandleFunc("GET /partials/editor", s.templateH.EditorCollapsed)
	mux.HandleFunc("GET /partials/editor/expand", s.templateH.EditorExpand)
	mux.HandleFunc("GET /partials/editor/cancel", s.templateH.EditorCancel)
	mux.HandleFunc("POST /partials/editor/color", s.templateH.EditorColor)
	mux.HandleFunc("POST /partials/editor/pin", s.templateH.EditorPin)
	mux.HandleFunc("POST /partials/editor/commit", s.templateH.EditorCommit)
	mux.HandleFunc("POST /partials/editor/blur", s.templateH.EditorBlur)
	mux.HandleFunc("POST /partials/editor/key", s.templateH.EditorKey)

	mux.HandleFunc("POST /partials/theme/toggle", s.templateH.ThemeToggle)

	// Pages
	mux.HandleFunc("GET /", s.templateH.Home)
}
