package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mkravets/dailynotes/internal/client/config"
	"github.com/mkravets/dailynotes/internal/client/forms"
	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/notes"
	"github.com/mkravets/dailynotes/internal/client/notify"
	"github.com/mkravets/dailynotes/internal/client/session"
	"github.com/mkravets/dailynotes/internal/logging"
)

// App owns every client-side service and the I/O the REPL works with.
type App struct {
	config   *config.Config
	log      logging.Logger
	gw       gateway.Gateway
	sessions *session.Service
	cache    *notes.Cache
	view     *notes.FilterView
	editor   *forms.Editor
	deletes  *forms.PendingDelete
	notifier notify.Notifier
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the full client stack against the configured remote service,
// reading from stdin and writing to stdout.
func NewApp(c *config.Config, log logging.Logger) *App {
	gw := gateway.NewHTTPGateway(c.BaseURL, c.RequestTimeout, gateway.NewTokenStore())
	return newAppWith(c, log, gw, os.Stdin, os.Stdout)
}

func newAppWith(c *config.Config, log logging.Logger, gw gateway.Gateway, in io.Reader, out io.Writer) *App {
	sessions := session.NewService(gw, log)
	cache := notes.NewCache(gw, sessions, log)
	return &App{
		config:   c,
		log:      log,
		gw:       gw,
		sessions: sessions,
		cache:    cache,
		view:     notes.NewFilterView(cache),
		editor:   forms.NewEditor(cache),
		deletes:  forms.NewPendingDelete(cache),
		notifier: notify.NewWriter(out),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the previous session if a usable token is stored, performs
// the initial collection load, and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Daily Notes CLI (type 'help' for commands)")

	if s := a.sessions.Restore(ctx); s.Authenticated {
		fmt.Fprintf(a.out, "Welcome back, %s\n", displayName(s))
		if err := a.cache.Load(ctx); err != nil {
			a.notifier.Notify(notify.KindError, failureMessage(err))
			fmt.Fprintln(a.out, "Type 'reload' to retry.")
		}
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().Authenticated
}

func (a *App) status() string {
	s := a.sessions.Current()
	if !s.Authenticated {
		return "signed out"
	}
	return s.User.Email
}

func displayName(s session.Session) string {
	if s.User == nil {
		return ""
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}

// failureMessage renders an error for the user, preferring the curated
// Failure message over raw error text.
func failureMessage(err error) string {
	if f, ok := gateway.AsFailure(err); ok {
		return f.Message
	}
	return err.Error()
}
