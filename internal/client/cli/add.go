package cli

import (
	"context"

	"github.com/mkravets/dailynotes/internal/client/notify"
)

// Add prompts for a title and multi-line content and creates the note. On
// failure the editor keeps the draft with the Failure retained; the next
// 'add' starts fresh.
func (a *App) Add(ctx context.Context) error {
	a.editor.OpenCreate()

	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		a.editor.Cancel()
		return err
	}

	content, err := getMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		a.editor.Cancel()
		return err
	}

	a.editor.SetDraft(title, content)
	if err := a.editor.Submit(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Note created")
	return nil
}
