package notes

import (
	"strings"
	"sync"

	"github.com/mkravets/dailynotes/internal/client/models"
)

// Filter returns the subsequence of notes whose title or content contains q
// as a case-insensitive substring, preserving the input order. An empty
// query is the identity projection.
func Filter(notes []models.Note, q string) []models.Note {
	if q == "" {
		return notes
	}

	q = strings.ToLower(q)
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// FilterView derives a filtered subset of the cache from a live query
// string. It recomputes synchronously whenever the query or the cache
// changes; it never mutates the cache and never performs I/O.
type FilterView struct {
	cache *Cache

	mu      sync.Mutex
	query   string
	visible []models.Note
	subs    []func()
}

func NewFilterView(cache *Cache) *FilterView {
	fv := &FilterView{cache: cache}
	cache.Subscribe(fv.recompute)
	fv.recompute()
	return fv
}

// SetQuery replaces the query string and recomputes the view.
func (fv *FilterView) SetQuery(q string) {
	fv.mu.Lock()
	fv.query = q
	fv.mu.Unlock()
	fv.recompute()
}

// Query returns the current query string.
func (fv *FilterView) Query() string {
	fv.mu.Lock()
	defer fv.mu.Unlock()
	return fv.query
}

// Visible returns the current filtered projection in cache order.
func (fv *FilterView) Visible() []models.Note {
	fv.mu.Lock()
	defer fv.mu.Unlock()
	out := make([]models.Note, len(fv.visible))
	copy(out, fv.visible)
	return out
}

// Subscribe registers fn to run after every recomputation.
func (fv *FilterView) Subscribe(fn func()) {
	fv.mu.Lock()
	defer fv.mu.Unlock()
	fv.subs = append(fv.subs, fn)
}

func (fv *FilterView) recompute() {
	notes := fv.cache.Notes()

	fv.mu.Lock()
	fv.visible = Filter(notes, fv.query)
	subs := make([]func(), len(fv.subs))
	copy(subs, fv.subs)
	fv.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
