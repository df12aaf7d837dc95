// Package notify carries transient user notifications (toasts) from the
// operations that produce them to the response that displays them.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
)

type Category string

const (
	Success Category = "success"
	Info    Category = "info"
	Error   Category = "error"
)

// Notification is observational only; nothing reads it back.
type Notification struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Icon     string   `json:"icon,omitempty"`
}

func NewSuccess(msg string) Notification { return Notification{Category: Success, Message: msg} }
func NewInfo(msg string) Notification    { return Notification{Category: Info, Message: msg} }
func NewError(msg string) Notification   { return Notification{Category: Error, Message: msg} }

// Notifier receives notifications raised by an operation.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Recorder collects the notifications raised while serving one request.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Add(n Notification) {
	r.mu.Lock()
	r.list = append(r.list, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.list))
	copy(out, r.list)
	return out
}

type recorderKey struct{}

// WithRecorder returns a context carrying a fresh Recorder.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	rec := &Recorder{}
	return context.WithValue(ctx, recorderKey{}, rec), rec
}

// RecorderFrom returns the Recorder in ctx, or nil.
func RecorderFrom(ctx context.Context) *Recorder {
	rec, _ := ctx.Value(recorderKey{}).(*Recorder)
	return rec
}

// ContextNotifier appends notifications to the Recorder found in the
// context. Notifications raised outside a request are only logged.
type ContextNotifier struct {
	Logger *slog.Logger
}

func (n ContextNotifier) Notify(ctx context.Context, note Notification) {
	if n.Logger != nil {
		n.Logger.Debug("notification", "category", note.Category, "message", note.Message)
	}
	if rec := RecorderFrom(ctx); rec != nil {
		rec.Add(note)
	}
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// TriggerHeader encodes notifications and extra client events into the
// value of an HX-Trigger response header. It returns "" when there is
// nothing to send.
func TriggerHeader(notes []Notification, extra map[string]any) (string, error) {
	if len(notes) == 0 && len(extra) == 0 {
		return "", nil
	}
	events := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		events[k] = v
	}
	if len(notes) > 0 {
		events["toast"] = notes
	}
	b, err := json.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Middleware attaches a Recorder to every request and flushes what it
// collected into the HX-Trigger header before the first byte of the
// response is written.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, rec := WithRecorder(r.Context())
		tw := &triggerWriter{ResponseWriter: w, rec: rec}
		next.ServeHTTP(tw, r.WithContext(ctx))
		if !tw.wroteHeader {
			tw.flush()
		}
	})
}

type triggerWriter struct {
	http.ResponseWriter
	rec         *Recorder
	wroteHeader bool
}

func (w *triggerWriter) flush() {
	w.wroteHeader = true
	notes := w.rec.Notifications()
	if len(notes) == 0 {
		return
	}
	extra := map[string]any{}
	if existing := w.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &extra); err != nil {
			extra = map[string]any{existing: nil}
		}
	}
	if v, err := TriggerHeader(notes, extra); err == nil {
		w.Header().Set("HX-Trigger", v)
	}
}

func (w *triggerWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.flush()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *triggerWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.flush()
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer, which
// the websocket upgrade needs.
func (w *triggerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
