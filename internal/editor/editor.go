// Package editor models the new-note form: a transient draft that only
// reaches the note store when it is committed.
package editor

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dukerupert/memosync/internal/model"
)

type State int

const (
	Collapsed State = iota
	Expanded
)

func (s State) String() string {
	if s == Expanded {
		return "expanded"
	}
	return "collapsed"
}

// Draft is the unsaved content of the form.
type Draft struct {
	Title   string
	Content string
	Color   model.Color
	Pinned  bool
}

// Blank reports whether committing the draft would create nothing.
func (d Draft) Blank() bool {
	return model.IsBlank(d.Title, d.Content)
}

// Creator is the part of the note store the form commits into.
type Creator interface {
	Create(ctx context.Context, title, content string, color model.Color, pinned bool) (*model.Note, error)
}

// Form is the editor state machine.
type Form struct {
	State State
	Draft Draft
}

// New returns a collapsed form with an empty draft.
func New() *Form {
	return &Form{Draft: Draft{Color: model.ColorDefault}}
}

// FromValues rebuilds an expanded form from posted fields. Unknown colors
// fall back to the default tag.
func FromValues(v url.Values) *Form {
	color, ok := model.ParseColor(v.Get("color"))
	if !ok {
		color = model.ColorDefault
	}
	pinned, _ := strconv.ParseBool(v.Get("pinned"))
	return &Form{
		State: Expanded,
		Draft: Draft{
			Title:   v.Get("title"),
			Content: v.Get("content"),
			Color:   color,
			Pinned:  pinned,
		},
	}
}

// Expand opens the form. It has no effect when already expanded.
func (f *Form) Expand() {
	f.State = Expanded
}

func (f *Form) SetColor(c model.Color) {
	if f.State != Expanded || !c.Valid() {
		return
	}
	f.Draft.Color = c
}

func (f *Form) TogglePin() {
	if f.State != Expanded {
		return
	}
	f.Draft.Pinned = !f.Draft.Pinned
}

// Cancel discards the draft unconditionally.
func (f *Form) Cancel() {
	f.State = Collapsed
	f.Draft = Draft{Color: model.ColorDefault}
}

// Commit hands the draft to c and resets the form. A blank draft creates
// nothing; the returned note is nil in that case.
func (f *Form) Commit(ctx context.Context, c Creator) (*model.Note, error) {
	if f.State != Expanded {
		return nil, nil
	}
	d := f.Draft
	f.Cancel()
	if d.Blank() {
		return nil, nil
	}
	return c.Create(ctx, d.Title, d.Content, d.Color, d.Pinned)
}

// Blur handles a pointer interaction outside the expanded form: a draft
// with content is committed, an empty one is discarded.
func (f *Form) Blur(ctx context.Context, c Creator) (*model.Note, error) {
	if f.State != Expanded {
		return nil, nil
	}
	if f.Draft.Blank() {
		f.Cancel()
		return nil, nil
	}
	return f.Commit(ctx, c)
}

// Key handles a key press inside the title or body field. Ctrl+Enter and
// Cmd+Enter commit; everything else is ignored.
func (f *Form) Key(ctx context.Context, c Creator, key string, ctrl, meta bool) (*model.Note, error) {
	if key != "Enter" || !(ctrl || meta) {
		return nil, nil
	}
	return f.Commit(ctx, c)
}

// Values encodes the draft as form fields, the inverse of FromValues.
func (f *Form) Values() url.Values {
	v := url.Values{}
	v.Set("title", f.Draft.Title)
	v.Set("content", f.Draft.Content)
	v.Set("color", string(f.Draft.Color))
	v.Set("pinned", strconv.FormatBool(f.Draft.Pinned))
	return v
}
