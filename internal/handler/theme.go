package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/memosync/internal/theme"
	"github.com/dukerupert/memosync/internal/websocket"
)

type ThemeHandler struct {
	theme  *theme.Preference
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewThemeHandler(tp *theme.Preference, hub *websocket.Hub, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{theme: tp, hub: hub, logger: logger}
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"dark": h.theme.Dark(r.Context(), theme.PrefersDark(r))})
}

func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	dark, err := h.theme.Toggle(r.Context(), theme.PrefersDark(r))
	if err != nil {
		h.logger.Error("failed to store theme", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save theme"})
		return
	}
	broadcastTheme(h.hub, dark)
	writeJSON(w, http.StatusOK, map[string]bool{"dark": dark})
}

func broadcastTheme(hub *websocket.Hub, dark bool) {
	if hub == nil {
		return
	}
	action := "light"
	if dark {
		action = "dark"
	}
	hub.Broadcast(websocket.NewMessage("theme", action, ""))
}
