// Package theme persists the dark mode preference.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/memosync/internal/notify"
	"github.com/dukerupert/memosync/internal/store"
)

// StorageKey holds a JSON boolean.
const StorageKey = "darkMode"

// ClientHintHeader carries the browser's color scheme preference when the
// server has asked for it with Accept-CH.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

type Preference struct {
	storage  store.Storage
	notifier notify.Notifier
	logger   *slog.Logger
}

func New(s store.Storage, n notify.Notifier, logger *slog.Logger) *Preference {
	if n == nil {
		n = notify.ContextNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Preference{storage: s, notifier: n, logger: logger}
}

// Dark returns the stored preference, or osPrefersDark when nothing valid
// has been stored yet.
func (p *Preference) Dark(ctx context.Context, osPrefersDark bool) bool {
	raw, err := p.storage.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.logger.Warn("failed to read theme preference", "error", err)
		}
		return osPrefersDark
	}
	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		p.logger.Warn("invalid theme preference", "value", raw)
		return osPrefersDark
	}
	return dark
}

// Set stores the preference.
func (p *Preference) Set(ctx context.Context, dark bool) error {
	b, _ := json.Marshal(dark)
	if err := p.storage.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

// Toggle flips the effective preference, stores it and returns the new
// value.
func (p *Preference) Toggle(ctx context.Context, osPrefersDark bool) (bool, error) {
	dark := !p.Dark(ctx, osPrefersDark)
	err := p.Set(ctx, dark)

	if dark {
		p.notifier.Notify(ctx, notify.Notification{Category: notify.Info, Message: "Switched to dark mode", Icon: "🌙"})
	} else {
		p.notifier.Notify(ctx, notify.Notification{Category: notify.Info, Message: "Switched to light mode", Icon: "☀️"})
	}
	return dark, err
}

// PrefersDark reads the OS level hint from a request.
func PrefersDark(r *http.Request) bool {
	return strings.EqualFold(strings.Trim(r.Header.Get(ClientHintHeader), `" `), "dark")
}
