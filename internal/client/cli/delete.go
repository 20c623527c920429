package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/notify"
)

// Delete prompts for a note ID and asks for confirmation before removing
// the note. Anything but "y" cancels; on failure the pending delete stays
// so the server-side state is unchanged and the user can retry.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter note id", a.out)
	if err != nil {
		return err
	}

	n, ok := a.cache.Get(id)
	if !ok {
		a.notifier.Notify(notify.KindError, "note not found")
		return gateway.DataFailure(gateway.ErrNotFound, "note not found")
	}

	a.deletes.Request(n.ID)

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", n.Title), a.out)
	if err != nil {
		a.deletes.Cancel()
		return err
	}

	if !strings.EqualFold(answer, "y") {
		a.deletes.Cancel()
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.deletes.Confirm(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Note deleted")
	return nil
}
