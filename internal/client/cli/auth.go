package cli

import (
	"context"

	"github.com/mkravets/dailynotes/internal/client/notify"
	"github.com/mkravets/dailynotes/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for an email, display name and password and attempts to
// create a new account. The provider signs the user in on success, so the
// collection is loaded right away.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter display name (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignUp(ctx, email, string(password), name); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Account created, you are signed in")
	return a.loadAfterAuth(ctx)
}

// Login prompts for credentials and tries to authenticate. On success the
// collection is loaded so 'list' works immediately.
//
// The password is securely wiped before returning. A failed attempt leaves
// the session signed out; nothing typed is retained.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignIn(ctx, email, string(password)); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}

	a.notifier.Notify(notify.KindSuccess, "Login successful!")
	return a.loadAfterAuth(ctx)
}

// Logout ends the session with the provider and drops the stored token.
// Signing out while already signed out is a no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}
	a.notifier.Notify(notify.KindSuccess, "Logged out")
	return nil
}

// loadAfterAuth performs the first collection fetch of a fresh session. A
// failure is reported but does not undo the sign-in; 'reload' retries.
func (a *App) loadAfterAuth(ctx context.Context) error {
	if err := a.cache.Load(ctx); err != nil {
		a.notifier.Notify(notify.KindError, failureMessage(err))
		return err
	}
	return nil
}
