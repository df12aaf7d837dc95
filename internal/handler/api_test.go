package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/memosync/internal/model"
	"github.com/dukerupert/memosync/internal/notes"
	"github.com/dukerupert/memosync/internal/store"
)

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestNoteAPIList(t *testing.T) {
	f := newFixture(t)
	h := NewNoteHandler(f.notes, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Contains(t, rec.Body.String(), `"isPinned":true`)
}

func TestNoteAPICreate(t *testing.T) {
	f := newFixture(t)
	h := NewNoteHandler(f.notes, slog.New(slog.DiscardHandler))

	tests := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"title":"API","content":"made remotely","color":"yellow"}`, http.StatusCreated},
		{"default color", `{"content":"plain"}`, http.StatusCreated},
		{"invalid json", `{`, http.StatusBadRequest},
		{"blank", `{"title":"  ","content":""}`, http.StatusBadRequest},
		{"bad color", `{"title":"x","color":"teal"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, jsonRequest(http.MethodPost, "/api/notes", tt.body))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	list := f.notes.List(context.Background())
	require.Len(t, list, 4)
	assert.Equal(t, "plain", list[0].Content)
	assert.Equal(t, model.ColorDefault, list[0].Color)
	assert.Equal(t, model.ColorYellow, list[1].Color)
}

func TestNoteAPIDelete(t *testing.T) {
	f := newFixture(t)
	h := NewNoteHandler(f.notes, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil), "1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, withID(httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil), "1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, f.notes.List(context.Background()), 1)
}

func TestNoteAPIPinAndRecolor(t *testing.T) {
	f := newFixture(t)
	h := NewNoteHandler(f.notes, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.TogglePin(rec, withID(httptest.NewRequest(http.MethodPost, "/api/notes/1/pin", nil), "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isPinned":false`)

	rec = httptest.NewRecorder()
	h.TogglePin(rec, withID(httptest.NewRequest(http.MethodPost, "/api/notes/404/pin", nil), "404"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Recolor(rec, withID(jsonRequest(http.MethodPut, "/api/notes/2/color", `{"color":"orange"}`), "2"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"color":"orange"`)

	rec = httptest.NewRecorder()
	h.Recolor(rec, withID(jsonRequest(http.MethodPut, "/api/notes/2/color", `{"color":""}`), "2"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Recolor(rec, withID(jsonRequest(http.MethodPut, "/api/notes/9/color", `{"color":"red"}`), "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type failingStorage struct {
	store.Storage
}

func (failingStorage) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestNoteAPIPersistFailure(t *testing.T) {
	ns := notes.NewStore(failingStorage{store.NewMemoryStore()}, notes.Options{Logger: slog.New(slog.DiscardHandler)})
	h := NewNoteHandler(ns, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Create(rec, jsonRequest(http.MethodPost, "/api/notes", `{"title":"lost"}`))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to save notes")
}

func TestThemeAPI(t *testing.T) {
	f := newFixture(t)
	h := NewThemeHandler(f.theme, f.hub, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	assert.JSONEq(t, `{"dark":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Toggle(rec, httptest.NewRequest(http.MethodPost, "/api/theme/toggle", nil))
	assert.JSONEq(t, `{"dark":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/theme", nil))
	assert.JSONEq(t, `{"dark":true}`, rec.Body.String())
}
