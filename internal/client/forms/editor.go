// Package forms manages transient editing intent: the create/edit dialog
// draft and the delete confirmation. Nothing here is persisted; drafts are
// discarded on close without trace.
package forms

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/models"
	"github.com/mkravets/dailynotes/internal/client/notes"
)

var (
	ErrEditorClosed = errors.New("editor is not open")
	ErrBusy         = errors.New("operation already in progress")
)

// Mode distinguishes creating a new note from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Editor is the form/dialog controller: Closed, or Open in Create or Edit
// mode with draft title/content.
//
// Submit routes to the collection cache and holds a busy flag for the
// duration of exactly one in-flight call, so rapid repeated submits cannot
// produce duplicate creates. On failure the editor stays open with the
// draft intact and the Failure retained for display; on success it closes
// and the draft is gone.
type Editor struct {
	cache *notes.Cache

	mu      sync.Mutex
	open    bool
	mode    Mode
	noteID  string
	title   string
	content string
	busy    bool
	gen     uint64 // bumped on close; a submit result from a closed editor is discarded
	lastErr error
}

func NewEditor(cache *notes.Cache) *Editor {
	return &Editor{cache: cache}
}

// OpenCreate opens the editor with empty drafts.
func (e *Editor) OpenCreate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	e.mode = ModeCreate
	e.noteID = ""
	e.title = ""
	e.content = ""
	e.lastErr = nil
}

// OpenEdit opens the editor seeded from the referenced note.
func (e *Editor) OpenEdit(n models.Note) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	e.mode = ModeEdit
	e.noteID = n.ID
	e.title = n.Title
	e.content = n.Content
	e.lastErr = nil
}

// SetDraft replaces the draft fields.
func (e *Editor) SetDraft(title, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.title = title
	e.content = content
}

// Draft returns the current draft fields.
func (e *Editor) Draft() (title, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title, e.content
}

// IsOpen reports whether the editor dialog is open.
func (e *Editor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Mode reports the editing mode; meaningful only while open.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Busy reports whether a submit is in flight.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Err returns the Failure of the last submit, if it failed.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Submit validates the draft and routes it to the cache as a create or an
// update. At most one submit is in flight at a time; re-entrant calls fail
// with ErrBusy and do not reach the gateway.
func (e *Editor) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	if e.busy {
		e.mu.Unlock()
		return ErrBusy
	}
	if strings.TrimSpace(e.title) == "" {
		err := gateway.DataFailure(gateway.ErrEmptyTitle, "title must not be empty")
		e.lastErr = err
		e.mu.Unlock()
		return err
	}
	e.busy = true
	gen := e.gen
	mode, id, title, content := e.mode, e.noteID, e.title, e.content
	e.mu.Unlock()

	var err error
	if mode == ModeCreate {
		_, err = e.cache.Create(ctx, title, content)
	} else {
		_, err = e.cache.Update(ctx, id, title, content)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		// editor was cancelled while the call was pending; nothing to update
		return err
	}
	e.busy = false
	if err != nil {
		e.lastErr = err
		return err
	}
	e.open = false
	e.title = ""
	e.content = ""
	e.lastErr = nil
	return nil
}

// Cancel closes the editor and discards the draft without any gateway call.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.open = false
	e.busy = false
	e.title = ""
	e.content = ""
	e.lastErr = nil
}
