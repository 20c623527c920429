package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/mkravets/dailynotes/internal/client/notes"
)

var ErrNothingPending = errors.New("no delete pending")

// PendingDelete tracks at most one note identifier awaiting user
// confirmation. It is independent of the Editor. Confirming invokes the
// cache's delete; the pending state is cleared only on success, so after a
// failure the user can retry or cancel with the Failure still visible.
type PendingDelete struct {
	cache *notes.Cache

	mu      sync.Mutex
	id      string
	busy    bool
	lastErr error
}

func NewPendingDelete(cache *notes.Cache) *PendingDelete {
	return &PendingDelete{cache: cache}
}

// Request marks the note as awaiting confirmation, replacing any previously
// pending identifier.
func (p *PendingDelete) Request(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
	p.lastErr = nil
}

// Active reports whether a delete is awaiting confirmation.
func (p *PendingDelete) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id != ""
}

// ID returns the pending note identifier, or "".
func (p *PendingDelete) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

// Err returns the Failure of the last confirm, if it failed.
func (p *PendingDelete) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Confirm performs the delete. Cleared only on success; on failure the
// pending identifier stays so the confirmation dialog remains open.
func (p *PendingDelete) Confirm(ctx context.Context) error {
	p.mu.Lock()
	if p.id == "" {
		p.mu.Unlock()
		return ErrNothingPending
	}
	if p.busy {
		p.mu.Unlock()
		return ErrBusy
	}
	p.busy = true
	id := p.id
	p.mu.Unlock()

	err := p.cache.Delete(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false
	if err != nil {
		p.lastErr = err
		return err
	}
	p.id = ""
	p.lastErr = nil
	return nil
}

// Cancel clears the pending delete without touching the gateway.
func (p *PendingDelete) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = ""
	p.busy = false
	p.lastErr = nil
}
