package theme

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/memosync/internal/notify"
	"github.com/dukerupert/memosync/internal/store"
)

func TestDarkFallsBackToOSHint(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemoryStore(), nil, nil)

	assert.True(t, p.Dark(ctx, true))
	assert.False(t, p.Dark(ctx, false))
}

func TestDarkIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, StorageKey, "maybe"))

	p := New(mem, nil, nil)
	assert.True(t, p.Dark(ctx, true))
}

func TestToggle(t *testing.T) {
	ctx, rec := notify.WithRecorder(context.Background())
	mem := store.NewMemoryStore()
	p := New(mem, nil, nil)

	dark, err := p.Toggle(ctx, false)
	require.NoError(t, err)
	assert.True(t, dark)

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	// Stored value now wins over the OS hint.
	assert.True(t, p.Dark(ctx, false))

	dark, err = p.Toggle(ctx, true)
	require.NoError(t, err)
	assert.False(t, dark)

	got := rec.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, "Switched to dark mode", got[0].Message)
	assert.Equal(t, "🌙", got[0].Icon)
	assert.Equal(t, "Switched to light mode", got[1].Message)
}

func TestThemeKeyIsSeparateFromNotes(t *testing.T) {
	assert.NotEqual(t, "memosync_notes", StorageKey)
}

func TestPrefersDark(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.False(t, PrefersDark(r))

	r.Header.Set(ClientHintHeader, `"dark"`)
	assert.True(t, PrefersDark(r))

	r.Header.Set(ClientHintHeader, "light")
	assert.False(t, PrefersDark(r))
}
