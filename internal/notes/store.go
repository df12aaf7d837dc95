// Package notes owns the note workspace: the ordered collection of notes,
// its write-through persistence and the operations that mutate it.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notify"
	"github.com/dukerupert/memosync/internal/store"
)

// StorageKey is the key the collection is persisted under. It must differ
// from the theme preference key.
const StorageKey = "memosync_notes"

var (
	// ErrInvalidColor is returned for a color outside model.Palette.
	ErrInvalidColor = errors.New("color is not in the palette")
	// ErrPersist wraps every write failure. The in-memory change it
	// accompanies has already been applied.
	ErrPersist = errors.New("persist notes")
)

// Action names a kind of mutation.
type Action string

const (
	ActionCreated   Action = "created"
	ActionDeleted   Action = "deleted"
	ActionPinned    Action = "pinned"
	ActionUnpinned  Action = "unpinned"
	ActionRecolored Action = "recolored"
	ActionReset     Action = "reset"
)

// Event is delivered to subscribers after a mutation has been applied.
type Event struct {
	Action Action
	ID     string
}

// Options configure a Store. Zero values are replaced with defaults.
type Options struct {
	Notifier notify.Notifier
	Logger   *slog.Logger
	Now      func() time.Time
	NewID    func() string
}

// Store is the single source of truth for the note collection.
type Store struct {
	storage  store.Storage
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	mu     sync.Mutex
	loaded bool
	notes  []model.Note

	subMu  sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewStore creates a Store over s. The collection is read lazily on first use.
func NewStore(s store.Storage, opts Options) *Store {
	if opts.Notifier == nil {
		opts.Notifier = notify.ContextNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Store{
		storage:  s,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		now:      opts.Now,
		newID:    opts.NewID,
		subs:     make(map[int]func(Event)),
	}
}

// Seed returns the default collection shown when nothing valid is stored.
func Seed(now time.Time) []model.Note {
	return []model.Note{
		{
			ID:        "1",
			Title:     "Welcome to MemoSync!",
			Content:   "This is your new favorite note-taking app. Try adding a new note below.",
			Color:     model.ColorBlue,
			IsPinned:  true,
			CreatedAt: now,
		},
		{
			ID:        "2",
			Title:     "Shopping List",
			Content:   "- Milk\n- Eggs\n- Bread\n- Coffee beans\n- Avocados",
			Color:     model.ColorGreen,
			IsPinned:  false,
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
}

// Load reads the persisted collection on first use. Missing or invalid data
// is replaced by the seed set. Load never fails: when storage cannot be read
// the seed set is served from memory, nothing is written, and the read is
// retried on the next call.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}

	raw, err := s.storage.Get(ctx, StorageKey)
	switch {
	case err == nil:
		notes, perr := decode(raw)
		if perr == nil {
			s.notes = notes
			s.loaded = true
			return
		}
		s.logger.Warn("stored notes are invalid, using seed notes", "error", perr)
	case errors.Is(err, store.ErrNotFound):
	default:
		s.logger.Warn("failed to read stored notes, serving seed notes until storage recovers", "error", err)
		if s.notes == nil {
			s.notes = Seed(s.now())
		}
		return
	}

	s.loaded = true
	s.notes = Seed(s.now())
	if err := s.persistLocked(ctx); err != nil {
		s.logger.Warn("failed to persist seed notes", "error", err)
	}
}

func decode(raw string) ([]model.Note, error) {
	var notes []model.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if notes == nil {
		return nil, errors.New("not a list")
	}
	if err := validate(notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func validate(notes []model.Note) error {
	seen := make(map[string]struct{}, len(notes))
	for i, n := range notes {
		if n.ID == "" {
			return fmt.Errorf("note %d has no id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("duplicate id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
		if n.Blank() {
			return fmt.Errorf("note %q is empty", n.ID)
		}
		if !n.Color.Valid() {
			return fmt.Errorf("note %q has unknown color %q", n.ID, n.Color)
		}
	}
	return nil
}

// saveLocked persists a mutation. While the stored collection is unreadable
// nothing is written, so the data already in storage is never replaced.
func (s *Store) saveLocked(ctx context.Context) error {
	if !s.loaded {
		return fmt.Errorf("%w: stored notes could not be read", ErrPersist)
	}
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// List returns a copy of the collection in display order.
func (s *Store) List(ctx context.Context) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Get returns the note with the given id, or nil.
func (s *Store) Get(ctx context.Context, id string) *model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	if i := s.indexLocked(id); i >= 0 {
		n := s.notes[i]
		return &n
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// Create prepends a new note. A draft whose title and content are both
// blank is dropped and Create returns nil, nil.
func (s *Store) Create(ctx context.Context, title, content string, color model.Color, pinned bool) (*model.Note, error) {
	if model.IsBlank(title, content) {
		return nil, nil
	}
	if color == "" {
		color = model.ColorDefault
	}
	if !color.Valid() {
		return nil, ErrInvalidColor
	}

	s.mu.Lock()
	s.loadLocked(ctx)

	id := s.newID()
	for s.indexLocked(id) >= 0 {
		id = s.newID()
	}
	note := model.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Color:     color,
		IsPinned:  pinned,
		CreatedAt: s.now(),
	}
	s.notes = append([]model.Note{note}, s.notes...)
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.NewSuccess("Note created successfully!"))
	s.publish(Event{Action: ActionCreated, ID: note.ID})
	return &note, err
}

// Delete removes the note with the given id. It reports whether a note was
// removed; deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	s.loadLocked(ctx)

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.NewInfo("Note deleted"))
	s.publish(Event{Action: ActionDeleted, ID: id})
	return true, err
}

// TogglePin flips the pinned flag. It returns nil for an unknown id.
func (s *Store) TogglePin(ctx context.Context, id string) (*model.Note, error) {
	s.mu.Lock()
	s.loadLocked(ctx)

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, nil
	}
	s.notes[i].IsPinned = !s.notes[i].IsPinned
	note := s.notes[i]
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	action, msg := ActionUnpinned, "Note unpinned"
	if note.IsPinned {
		action, msg = ActionPinned, "Note pinned"
	}
	s.notifier.Notify(ctx, notify.NewInfo(msg))
	s.publish(Event{Action: action, ID: id})
	return &note, err
}

// Recolor sets the color tag. It returns nil for an unknown id.
func (s *Store) Recolor(ctx context.Context, id string, color model.Color) (*model.Note, error) {
	if !color.Valid() {
		return nil, ErrInvalidColor
	}

	s.mu.Lock()
	s.loadLocked(ctx)

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, nil
	}
	s.notes[i].Color = color
	note := s.notes[i]
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.NewInfo("Note color updated"))
	s.publish(Event{Action: ActionRecolored, ID: id})
	return &note, err
}

// Reset drops the persisted collection and reloads the seed set.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("reset notes: %w", err)
	}
	s.loaded = false
	s.notes = nil
	s.loadLocked(ctx)
	s.mu.Unlock()

	s.publish(Event{Action: ActionReset})
	return nil
}

// Subscribe registers fn to be called after every applied mutation. The
// returned func removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(e Event) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subs {
		fn(e)
	}
}
