package model

import (
	"strings"
	"time"
)

// Note is the only persisted entity. The JSON field names are the
// persisted format of the workspace and must not change.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     Color     `json:"color"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
}

// Blank reports whether both title and content are empty after trimming.
func (n Note) Blank() bool {
	return IsBlank(n.Title, n.Content)
}

// IsBlank reports whether title and content are both whitespace only.
func IsBlank(title, content string) bool {
	return strings.TrimSpace(title) == "" && strings.TrimSpace(content) == ""
}
