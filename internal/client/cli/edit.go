package cli

import (
	"context"
	"fmt"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/notify"
)

// Edit prompts for a note ID, seeds the editor from the cached note, and
// submits the changed fields. Pressing Enter on a prompt keeps the current
// value.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter note id", a.out)
	if err != nil {
		return err
	}

	n, ok := a.cache.Get(id)
	if !ok {
		a.notifier.Notify(notify.KindError, "note not found")
		return gateway.DataFailure(gateway.ErrNotFound, "note not found")
	}

	a.editor.OpenEdit(n)

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title [%s]", n.Title), a.out)
	if err != nil {
		a.editor.Cancel()
		return err
	}
	if title == "" {
		title = n.Title
	}

	content, err := getMultiline(a.reader, "Enter content (empty keeps current)", a.out)
	if err != nil {
		a.editor.Cancel()
		return err
	}
	if content == "" {
		content = n.Content
	}

	a.editor.SetDraft(title, content)
	if err := a.editor.Submit(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Note updated")
	return nil
}
