package editor

import (
	"context"
	"net/url"
	"testing"

	"github.com/dukerupert/memosync/internal/model"
)

type fakeCreator struct {
	calls []Draft
}

func (f *fakeCreator) Create(_ context.Context, title, content string, color model.Color, pinned bool) (*model.Note, error) {
	f.calls = append(f.calls, Draft{Title: title, Content: content, Color: color, Pinned: pinned})
	return &model.Note{ID: "n1", Title: title, Content: content, Color: color, IsPinned: pinned}, nil
}

func expanded(title, content string) *Form {
	f := New()
	f.Expand()
	f.Draft.Title = title
	f.Draft.Content = content
	return f
}

func TestNewIsCollapsed(t *testing.T) {
	f := New()
	if f.State != Collapsed {
		t.Fatalf("state = %v, want collapsed", f.State)
	}
	if f.Draft.Color != model.ColorDefault {
		t.Errorf("color = %q, want default", f.Draft.Color)
	}
}

func TestCommit(t *testing.T) {
	c := &fakeCreator{}
	f := expanded("Groceries", "Milk")
	f.SetColor(model.ColorGreen)
	f.TogglePin()

	note, err := f.Commit(context.Background(), c)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if note == nil || note.Title != "Groceries" {
		t.Fatalf("note = %+v", note)
	}
	if len(c.calls) != 1 {
		t.Fatalf("create calls = %d, want 1", len(c.calls))
	}
	want := Draft{Title: "Groceries", Content: "Milk", Color: model.ColorGreen, Pinned: true}
	if c.calls[0] != want {
		t.Errorf("created %+v, want %+v", c.calls[0], want)
	}
	if f.State != Collapsed || f.Draft != (Draft{Color: model.ColorDefault}) {
		t.Errorf("form not reset: %+v", f)
	}
}

func TestCommitBlankIsCancel(t *testing.T) {
	c := &fakeCreator{}
	f := expanded("", "   ")

	note, err := f.Commit(context.Background(), c)
	if err != nil || note != nil {
		t.Fatalf("commit blank = %v, %v", note, err)
	}
	if len(c.calls) != 0 {
		t.Error("blank draft must not reach the store")
	}
	if f.State != Collapsed {
		t.Error("form should collapse")
	}
}

func TestCancelDiscards(t *testing.T) {
	c := &fakeCreator{}
	f := expanded("keep?", "no")
	f.Cancel()

	if f.State != Collapsed || f.Draft.Title != "" {
		t.Errorf("cancel left %+v", f)
	}
	if _, err := f.Commit(context.Background(), c); err != nil || len(c.calls) != 0 {
		t.Error("commit on collapsed form must do nothing")
	}
}

func TestBlur(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		creates int
	}{
		{"title only", "Idea", "", 1},
		{"content only", "", "body", 1},
		{"blank", " ", "\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCreator{}
			f := expanded(tt.title, tt.content)
			if _, err := f.Blur(context.Background(), c); err != nil {
				t.Fatalf("blur: %v", err)
			}
			if len(c.calls) != tt.creates {
				t.Errorf("creates = %d, want %d", len(c.calls), tt.creates)
			}
			if f.State != Collapsed {
				t.Error("blur should collapse")
			}
		})
	}
}

func TestBlurWhileCollapsed(t *testing.T) {
	c := &fakeCreator{}
	f := New()
	f.Draft.Title = "stale"
	f.Blur(context.Background(), c)
	if len(c.calls) != 0 {
		t.Error("collapsed form must ignore outside clicks")
	}
}

func TestKeyChord(t *testing.T) {
	tests := []struct {
		key     string
		ctrl    bool
		meta    bool
		creates int
	}{
		{"Enter", true, false, 1},
		{"Enter", false, true, 1},
		{"Enter", false, false, 0},
		{"a", true, false, 0},
	}

	for _, tt := range tests {
		c := &fakeCreator{}
		f := expanded("t", "c")
		f.Key(context.Background(), c, tt.key, tt.ctrl, tt.meta)
		if len(c.calls) != tt.creates {
			t.Errorf("key %q ctrl=%v meta=%v: creates = %d, want %d", tt.key, tt.ctrl, tt.meta, len(c.calls), tt.creates)
		}
	}
}

func TestSetColorIgnoresInvalidAndCollapsed(t *testing.T) {
	f := New()
	f.SetColor(model.ColorRed)
	if f.Draft.Color != model.ColorDefault {
		t.Error("collapsed form must not change color")
	}

	f.Expand()
	f.SetColor("teal")
	if f.Draft.Color != model.ColorDefault {
		t.Error("unknown color must be ignored")
	}
	f.SetColor(model.ColorRed)
	if f.Draft.Color != model.ColorRed {
		t.Errorf("color = %q, want red", f.Draft.Color)
	}
}

func TestFromValues(t *testing.T) {
	f := FromValues(url.Values{
		"title":   {"T"},
		"content": {"C"},
		"color":   {"pink"},
		"pinned":  {"true"},
	})
	if f.State != Expanded {
		t.Error("posted form is expanded")
	}
	want := Draft{Title: "T", Content: "C", Color: model.ColorPink, Pinned: true}
	if f.Draft != want {
		t.Errorf("draft = %+v, want %+v", f.Draft, want)
	}

	back := FromValues(f.Values())
	if back.Draft != want {
		t.Errorf("values round trip = %+v", back.Draft)
	}

	bad := FromValues(url.Values{"color": {"teal"}})
	if bad.Draft.Color != model.ColorDefault {
		t.Errorf("unknown color = %q, want default", bad.Draft.Color)
	}
}
