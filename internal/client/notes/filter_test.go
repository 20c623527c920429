package notes

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dailynotes/internal/client/models"
	"github.com/mkravets/dailynotes/internal/logging"
)

func sampleNotes() []models.Note {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []models.Note{
		note("n3", "Things to Remember", "Pay the electricity bill", t0.Add(2*time.Hour)),
		note("n2", "Ideas for Project", "Add PDF export. Fix profile UI.", t0.Add(time.Hour)),
		note("n1", "Meeting Notes", "Marketing strategy for Q4", t0),
	}
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	in := sampleNotes()
	got := Filter(in, "")
	assert.Equal(t, in, got, "empty query preserves the full set and its order")
}

func TestFilter_MatchesTitleOrContentCaseInsensitive(t *testing.T) {
	in := sampleNotes()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "title match", query: "ideas", wantIDs: []string{"n2"}},
		{name: "content match", query: "q4", wantIDs: []string{"n1"}},
		{name: "mixed case", query: "PDF", wantIDs: []string{"n2"}},
		{name: "shared substring keeps order", query: "e", wantIDs: []string{"n3", "n2", "n1"}},
		{name: "no match", query: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(in, tt.query)
			ids := make([]string, 0, len(got))
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	in := sampleNotes()
	once := Filter(in, "notes")
	twice := Filter(once, "notes")
	assert.Equal(t, once, twice)
}

func TestFilterView_RecomputesOnQueryAndCacheChanges(t *testing.T) {
	fg := &fakeGateway{listNotes: sampleNotes()}
	c := newTestCache(fg, &fakeSessions{authed: true})
	fv := NewFilterView(c)

	// nothing loaded yet
	assert.Empty(t, fv.Visible())

	// cache change propagates without touching the query
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, fv.Visible(), 3)

	fv.SetQuery("project")
	visible := fv.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "n2", visible[0].ID)

	fv.SetQuery("")
	assert.Len(t, fv.Visible(), 3)
}

func TestFilterView_FollowsCacheMutations(t *testing.T) {
	created := note("n4", "New Project Plan", "", time.Now())
	fg := &fakeGateway{listNotes: sampleNotes(), createNote: &created}
	c := NewCache(fg, &fakeSessions{authed: true}, logging.NewSlogLogger(slog.Default()))
	fv := NewFilterView(c)
	require.NoError(t, c.Load(context.Background()))

	fv.SetQuery("project")
	require.Len(t, fv.Visible(), 1)

	_, err := c.Create(context.Background(), "New Project Plan", "")
	require.NoError(t, err)

	visible := fv.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "n4", visible[0].ID, "new note is newest and comes first")
}

func TestFilterView_SubscribersNotified(t *testing.T) {
	fg := &fakeGateway{listNotes: sampleNotes()}
	c := newTestCache(fg, &fakeSessions{authed: true})
	fv := NewFilterView(c)

	var calls int
	fv.Subscribe(func() { calls++ })

	fv.SetQuery("x")
	require.NoError(t, c.Load(context.Background()))

	assert.GreaterOrEqual(t, calls, 2)
}
