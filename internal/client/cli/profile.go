package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mkravets/dailynotes/internal/client/notify"
	"github.com/mkravets/dailynotes/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

// WhoAmI prints the signed-in identity, mirroring what a navigation bar
// would show.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Authenticated {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	if s.User.Name != "" {
		fmt.Fprintf(a.out, "%s <%s>\n", s.User.Name, s.User.Email)
	} else {
		fmt.Fprintln(a.out, s.User.Email)
	}
	return nil
}

// Profile prompts for a new display name and updates it with the provider.
// Pressing Enter keeps the current name.
func (a *App) Profile(ctx context.Context) error {
	s := a.sessions.Current()
	cur := ""
	if s.User != nil {
		cur = s.User.Name
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Enter display name [%s]", cur), a.out)
	if err != nil {
		return err
	}
	if name == "" || name == cur {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if err := a.sessions.UpdateProfile(ctx, name); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Profile updated")
	return nil
}

// Passwd prompts for the current password and the new one twice, checks the
// confirmation locally, and changes the password with the provider. All
// password buffers are wiped before returning.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Enter current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(next, confirm) {
		a.notifier.Notify(notify.KindError, errPasswordMismatch.Error())
		return errPasswordMismatch
	}

	if err := a.sessions.ChangePassword(ctx, string(current), string(next)); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Password changed")
	return nil
}
