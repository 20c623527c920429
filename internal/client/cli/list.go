package cli

import (
	"context"
	"fmt"

	"github.com/mkravets/dailynotes/internal/client/notes"
	"github.com/mkravets/dailynotes/internal/client/notify"
)

const excerptWidth = 60

// List renders the note collection with the current search filter applied.
// An unloaded collection is fetched first; a failed one is reported with a
// hint to 'reload'.
func (a *App) List(ctx context.Context) error {
	if a.cache.State() == notes.StateUnloaded {
		if err := a.cache.Load(ctx); err != nil {
			a.notifier.Notify(notify.KindError, failureMessage(err))
			return err
		}
	}

	if a.cache.State() == notes.StateFailed {
		err := a.cache.Err()
		a.notifier.Notify(notify.KindError, failureMessage(err))
		fmt.Fprintln(a.out, "Type 'reload' to retry.")
		return err
	}

	a.renderList()
	return nil
}

// Search updates the filter query and renders the result. An empty query
// clears the filter.
func (a *App) Search(ctx context.Context, query string) error {
	a.view.SetQuery(query)
	return a.List(ctx)
}

// Reload refetches the collection from the server, replacing the cache
// wholesale on success.
func (a *App) Reload(ctx context.Context) error {
	if err := a.cache.Load(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}
	a.notifier.Notify(notify.KindSuccess, fmt.Sprintf("Reloaded %d notes", a.cache.Len()))
	return nil
}

func (a *App) renderList() {
	visible := a.view.Visible()

	if len(visible) == 0 {
		if a.cache.Len() == 0 {
			fmt.Fprintln(a.out, "No notes yet. Type 'add' to create one.")
		} else {
			fmt.Fprintf(a.out, "No notes match %q.\n", a.view.Query())
		}
		return
	}

	if q := a.view.Query(); q != "" {
		fmt.Fprintf(a.out, "Notes matching %q:\n", q)
	}
	for _, n := range visible {
		fmt.Fprintf(a.out, "%s  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
		if ex := n.Excerpt(excerptWidth); ex != "" {
			fmt.Fprintf(a.out, "    %s\n", ex)
		}
	}
}
