// Package notes holds the client-side mirror of the user's note collection:
// an in-memory cache kept consistent with the remote store after every
// mutation, and a reactive filtered view over it.
package notes

import (
	"context"
	"strings"
	"sync"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/models"
	"github.com/mkravets/dailynotes/internal/client/session"
	"github.com/mkravets/dailynotes/internal/logging"
)

// State is the loading state of the collection. Exactly one holds at a time.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionSource is the slice of the session service the cache depends on.
type SessionSource interface {
	Current() session.Session
	Subscribe(func(session.Session))
}

// Cache mirrors the authoritative note set for the active session.
//
// Mutations are all-or-nothing: the cache changes only after the gateway
// confirms, so a failure leaves the previous state intact. Notes are kept in
// the server's order (createdAt descending); a confirmed create is prepended
// since creation timestamps are always newest.
//
// Safe for concurrent use. Subscribers run outside the internal lock.
type Cache struct {
	gw       gateway.Gateway
	sessions SessionSource
	log      logging.Logger

	mu      sync.Mutex
	state   State
	notes   []models.Note
	loadErr error
	gen     uint64 // bumped on Reset; in-flight results from an older generation are discarded
	subs    []func()
}

// NewCache wires the cache to the session lifecycle: the collection is
// dropped the moment the session ends, so notes never leak across sessions.
func NewCache(gw gateway.Gateway, sessions SessionSource, log logging.Logger) *Cache {
	c := &Cache{gw: gw, sessions: sessions, log: log}
	sessions.Subscribe(func(s session.Session) {
		if !s.Authenticated {
			c.Reset()
		}
	})
	return c
}

// State reports the current loading state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the Failure of the last failed load, if the cache is Failed.
func (c *Cache) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Notes returns a copy of the cached collection in server order.
func (c *Cache) Notes() []models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Len reports the number of cached notes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notes)
}

// Get returns the cached note with the given id.
func (c *Cache) Get(id string) (models.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Subscribe registers fn to run after every visible change of the cache
// (state transition or collection content).
func (c *Cache) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Load fetches the full collection from the gateway. It is also the manual
// retry after a failed load. On failure the cache transitions to Failed and
// the Failure is both stored and returned.
func (c *Cache) Load(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	c.mu.Lock()
	gen := c.gen
	c.state = StateLoading
	c.mu.Unlock()
	c.notifyAll()

	fetched, err := c.gw.ListNotes(ctx)

	c.mu.Lock()
	if c.gen != gen {
		// session ended while the request was in flight; the result belongs
		// to a collection that no longer exists
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateFailed
		c.loadErr = err
		c.mu.Unlock()
		c.notifyAll()
		return err
	}
	c.state = StateLoaded
	c.loadErr = nil
	c.notes = fetched
	c.mu.Unlock()
	c.notifyAll()

	c.log.Debug(ctx, "notes loaded", "count", len(fetched))
	return nil
}

// Create submits a new note. An empty title is rejected locally before any
// gateway call. On success the confirmed note is prepended (it is the
// newest) and returned; on failure the cache is unchanged.
func (c *Cache) Create(ctx context.Context, title, content string) (*models.Note, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, gateway.DataFailure(gateway.ErrEmptyTitle, "title must not be empty")
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	note, err := c.gw.CreateNote(ctx, title, content)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.notes = append([]models.Note{*note}, c.notes...)
	}
	c.mu.Unlock()
	c.notifyAll()
	return note, nil
}

// Update submits changed title/content for an existing note. The id must
// reference a note currently in the cache. On success the entry is replaced
// in place — createdAt is immutable, so the order does not move.
func (c *Cache) Update(ctx context.Context, id, title, content string) (*models.Note, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, gateway.DataFailure(gateway.ErrEmptyTitle, "title must not be empty")
	}
	if _, ok := c.Get(id); !ok {
		return nil, gateway.DataFailure(gateway.ErrNotFound, "note not found")
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	note, err := c.gw.UpdateNote(ctx, id, title, content)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen == gen {
		for i := range c.notes {
			if c.notes[i].ID == id {
				c.notes[i] = *note
				break
			}
		}
	}
	c.mu.Unlock()
	c.notifyAll()
	return note, nil
}

// Delete removes a note. The id must reference a note currently in the
// cache; a repeated delete of the same id fails with a not-found Failure
// without touching the gateway.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if _, ok := c.Get(id); !ok {
		return gateway.DataFailure(gateway.ErrNotFound, "note not found")
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	if err := c.gw.DeleteNote(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	if c.gen == gen {
		for i := range c.notes {
			if c.notes[i].ID == id {
				c.notes = append(c.notes[:i], c.notes[i+1:]...)
				break
			}
		}
	}
	c.mu.Unlock()
	c.notifyAll()
	return nil
}

// Reset drops the collection and returns to Unloaded. Called on session
// teardown; any in-flight results are discarded when they land.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.gen++
	c.state = StateUnloaded
	c.notes = nil
	c.loadErr = nil
	c.mu.Unlock()
	c.notifyAll()
}

func (c *Cache) requireAuth() error {
	if !c.sessions.Current().Authenticated {
		return gateway.AuthFailure(gateway.ErrNotAuthenticated, "not signed in")
	}
	return nil
}

func (c *Cache) notifyAll() {
	c.mu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
