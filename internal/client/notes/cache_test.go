package notes

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/models"
	"github.com/mkravets/dailynotes/internal/client/session"
	"github.com/mkravets/dailynotes/internal/logging"
)

type fakeSessions struct {
	authed bool
	subs   []func(session.Session)
}

func (f *fakeSessions) Current() session.Session {
	return session.Session{Authenticated: f.authed}
}

func (f *fakeSessions) Subscribe(fn func(session.Session)) {
	f.subs = append(f.subs, fn)
}

func (f *fakeSessions) signOut() {
	f.authed = false
	for _, fn := range f.subs {
		fn(session.Session{})
	}
}

type fakeGateway struct {
	gateway.Gateway

	listNotes []models.Note
	listErr   error
	listCalls int
	onList    func() // runs before the list result is returned

	createNote  *models.Note
	createErr   error
	createCalls int

	updateNote  *models.Note
	updateErr   error
	updateCalls int

	deleteErr   error
	deleteCalls int
}

func (f *fakeGateway) ListNotes(context.Context) ([]models.Note, error) {
	f.listCalls++
	if f.onList != nil {
		f.onList()
	}
	return f.listNotes, f.listErr
}

func (f *fakeGateway) CreateNote(_ context.Context, title, content string) (*models.Note, error) {
	f.createCalls++
	return f.createNote, f.createErr
}

func (f *fakeGateway) UpdateNote(_ context.Context, id, title, content string) (*models.Note, error) {
	f.updateCalls++
	return f.updateNote, f.updateErr
}

func (f *fakeGateway) DeleteNote(_ context.Context, id string) error {
	f.deleteCalls++
	return f.deleteErr
}

func note(id, title, content string, createdAt time.Time) models.Note {
	return models.Note{
		ID: id, Title: title, Content: content,
		CreatedAt: createdAt, UpdatedAt: createdAt,
	}
}

func newTestCache(fg *fakeGateway, fs *fakeSessions) *Cache {
	return NewCache(fg, fs, logging.NewSlogLogger(slog.Default()))
}

func TestLoad_UnloadedToLoaded(t *testing.T) {
	t0 := time.Now().Add(-time.Hour)
	fg := &fakeGateway{listNotes: []models.Note{
		note("n2", "B", "", t0.Add(time.Minute)),
		note("n1", "A", "", t0),
	}}
	c := newTestCache(fg, &fakeSessions{authed: true})

	require.Equal(t, StateUnloaded, c.State())
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, StateLoaded, c.State())
	assert.Equal(t, 2, c.Len())
}

func TestLoad_FailureThenRetry(t *testing.T) {
	fg := &fakeGateway{listErr: gateway.TransportFailure(gateway.ErrUnavailable, "down")}
	c := newTestCache(fg, &fakeSessions{authed: true})

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, c.State())
	assert.True(t, errors.Is(c.Err(), gateway.ErrUnavailable))

	// manual retry succeeds
	fg.listErr = nil
	fg.listNotes = []models.Note{note("n1", "A", "", time.Now())}
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateLoaded, c.State())
	assert.NoError(t, c.Err())
	assert.Equal(t, 1, c.Len())
}

func TestUnauthenticated_OperationsNeverReachGateway(t *testing.T) {
	fg := &fakeGateway{}
	c := newTestCache(fg, &fakeSessions{authed: false})
	ctx := context.Background()

	for name, op := range map[string]func() error{
		"load":   func() error { return c.Load(ctx) },
		"create": func() error { _, err := c.Create(ctx, "T", ""); return err },
		"update": func() error { _, err := c.Update(ctx, "n1", "T", ""); return err },
		"delete": func() error { return c.Delete(ctx, "n1") },
	} {
		err := op()
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, gateway.ErrNotAuthenticated), name)
		assert.Equal(t, gateway.KindAuth, gateway.KindOf(err), name)
	}

	assert.Equal(t, StateUnloaded, c.State())
	assert.Zero(t, fg.listCalls+fg.createCalls+fg.updateCalls+fg.deleteCalls)
}

func TestCreate_EmptyTitleRejectedLocally(t *testing.T) {
	fg := &fakeGateway{}
	c := newTestCache(fg, &fakeSessions{authed: true})

	_, err := c.Create(context.Background(), "   ", "content")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrEmptyTitle))
	assert.Equal(t, 0, fg.createCalls, "gateway must not be called")
}

func TestCreate_PrependsConfirmedNote(t *testing.T) {
	now := time.Now()
	created := note("n-new", "Groceries", "milk, eggs", now)
	fg := &fakeGateway{listNotes: nil, createNote: &created}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, 0, c.Len())

	got, err := c.Create(context.Background(), "Groceries", "milk, eggs")
	require.NoError(t, err)
	assert.Equal(t, "n-new", got.ID)

	notes := c.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "milk, eggs", notes[0].Content)
}

func TestCreate_NewestComesFirst(t *testing.T) {
	t0 := time.Now().Add(-time.Hour)
	existing := note("n1", "Old", "", t0)
	created := note("n2", "New", "", time.Now())
	fg := &fakeGateway{listNotes: []models.Note{existing}, createNote: &created}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Create(context.Background(), "New", "")
	require.NoError(t, err)

	notes := c.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "n2", notes[0].ID)
	assert.Equal(t, "n1", notes[1].ID)
}

func TestCreate_FailureLeavesCacheUnchanged(t *testing.T) {
	fg := &fakeGateway{createErr: gateway.TransportFailure(gateway.ErrUnavailable, "down")}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Create(context.Background(), "T", "")
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, StateLoaded, c.State())
}

func TestUpdate_ReplacesInPlaceKeepingOrder(t *testing.T) {
	t0 := time.Now().Add(-time.Hour)
	t1 := t0.Add(time.Minute)
	a := note("a", "A", "alpha", t0)
	b := note("b", "B", "beta", t1)

	renamed := a
	renamed.Title = "Renamed"
	renamed.UpdatedAt = time.Now()

	fg := &fakeGateway{listNotes: []models.Note{b, a}, updateNote: &renamed}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	before := c.Notes()
	_, err := c.Update(context.Background(), "a", "Renamed", "alpha")
	require.NoError(t, err)

	after := c.Notes()
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0], "untouched entry is identical")
	assert.Equal(t, "Renamed", after[1].Title)
	assert.Equal(t, "alpha", after[1].Content)
	assert.Equal(t, a.CreatedAt, after[1].CreatedAt, "createdAt is immutable")
	assert.True(t, after[1].UpdatedAt.After(a.UpdatedAt))
}

func TestUpdate_UnknownIDFailsWithoutGatewayCall(t *testing.T) {
	fg := &fakeGateway{}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Update(context.Background(), "missing", "T", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrNotFound))
	assert.Equal(t, 0, fg.updateCalls)
}

func TestDelete_RemovesEntryAndSecondDeleteFails(t *testing.T) {
	a := note("a", "A", "", time.Now())
	fg := &fakeGateway{listNotes: []models.Note{a}}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.Delete(context.Background(), "a"))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, fg.deleteCalls)

	err := c.Delete(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gateway.ErrNotFound))
	assert.Equal(t, gateway.KindData, gateway.KindOf(err))
	assert.Equal(t, 1, fg.deleteCalls, "second delete never reaches the gateway")
}

func TestDelete_FailureKeepsEntry(t *testing.T) {
	a := note("a", "A", "", time.Now())
	fg := &fakeGateway{
		listNotes: []models.Note{a},
		deleteErr: gateway.TransportFailure(gateway.ErrUnavailable, "down"),
	}
	c := newTestCache(fg, &fakeSessions{authed: true})
	require.NoError(t, c.Load(context.Background()))

	err := c.Delete(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestSignOut_ResetsCache(t *testing.T) {
	fs := &fakeSessions{authed: true}
	fg := &fakeGateway{listNotes: []models.Note{note("a", "A", "", time.Now())}}
	c := newTestCache(fg, fs)
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, StateLoaded, c.State())

	fs.signOut()

	assert.Equal(t, StateUnloaded, c.State())
	assert.Equal(t, 0, c.Len())
}

func TestLoad_ResultAfterResetIsDiscarded(t *testing.T) {
	fs := &fakeSessions{authed: true}
	fg := &fakeGateway{listNotes: []models.Note{note("a", "A", "", time.Now())}}
	c := newTestCache(fg, fs)

	// the session ends while the list request is in flight
	fg.onList = func() { c.Reset() }

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateUnloaded, c.State())
	assert.Equal(t, 0, c.Len())
}

func TestSubscribe_NotifiedOnChanges(t *testing.T) {
	fg := &fakeGateway{listNotes: []models.Note{note("a", "A", "", time.Now())}}
	c := newTestCache(fg, &fakeSessions{authed: true})

	var calls int
	c.Subscribe(func() { calls++ })

	require.NoError(t, c.Load(context.Background()))
	assert.GreaterOrEqual(t, calls, 2, "loading and loaded transitions both notify")
}
