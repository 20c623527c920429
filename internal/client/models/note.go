// Package models defines the entities exchanged with the Daily Notes service.
package models

import (
	"strings"
	"time"
)

// Note is a single user memo.
//
// ID, CreatedAt and UpdatedAt are assigned by the server: ID and CreatedAt
// are immutable after creation, UpdatedAt is refreshed on every update.
// Title is never empty at rest; the client validates before submitting.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Excerpt returns the first line of the note content shortened to max runes,
// with an ellipsis appended when anything was cut off. Used by list views.
func (n Note) Excerpt(max int) string {
	s := n.Content
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "…"
	}
	if s != n.Content {
		return s + "…"
	}
	return s
}
