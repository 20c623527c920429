// Package session tracks the authentication state of the client: whether a
// user is signed in, who they are, and transitions between the two.
package session

import (
	"context"
	"sync"

	"github.com/mkravets/dailynotes/internal/client/gateway"
	"github.com/mkravets/dailynotes/internal/client/models"
	"github.com/mkravets/dailynotes/internal/logging"
)

// Session is the authentication state at one point in time. The zero value
// is the unauthenticated session.
type Session struct {
	Authenticated bool
	User          *models.User
}

// Service owns the single active session of the client instance.
//
// Screens gate their content on Current(); interested components subscribe
// to be told when the session changes (the note cache resets itself on
// sign-out this way). Safe for concurrent use; subscribers are invoked
// outside the internal lock.
type Service struct {
	gw  gateway.Gateway
	log logging.Logger

	mu   sync.Mutex
	cur  Session
	subs []func(Session)
}

func NewService(gw gateway.Gateway, log logging.Logger) *Service {
	return &Service{gw: gw, log: log}
}

// Restore performs the single startup check of ambient authentication state
// (a previously issued token). It resolves to authenticated or
// unauthenticated and never surfaces a Failure: an unusable token simply
// means the user signs in again.
func (s *Service) Restore(ctx context.Context) Session {
	user, err := s.gw.CurrentUser(ctx)
	if err != nil {
		s.log.Debug(ctx, "session restore resolved unauthenticated", "reason", err.Error())
		return s.Current()
	}

	s.log.Info(ctx, "session restored", "email", user.Email)
	s.set(Session{Authenticated: true, User: user})
	return s.Current()
}

// SignIn authenticates with the remote provider. On failure the session
// stays unauthenticated and the Failure is returned unchanged.
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	user, err := s.gw.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	s.set(Session{Authenticated: true, User: user})
	return nil
}

// SignUp creates an account and signs the new user in.
func (s *Service) SignUp(ctx context.Context, email, password, name string) error {
	user, err := s.gw.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	s.set(Session{Authenticated: true, User: user})
	return nil
}

// SignOut tears the session down. Calling it while already signed out
// succeeds silently without touching the gateway.
func (s *Service) SignOut(ctx context.Context) error {
	if !s.Current().Authenticated {
		return nil
	}

	if err := s.gw.SignOut(ctx); err != nil {
		return err
	}

	s.set(Session{})
	return nil
}

// UpdateProfile changes the display name of the signed-in user.
func (s *Service) UpdateProfile(ctx context.Context, name string) error {
	if !s.Current().Authenticated {
		return gateway.AuthFailure(gateway.ErrNotAuthenticated, "not signed in")
	}

	user, err := s.gw.UpdateProfile(ctx, name)
	if err != nil {
		return err
	}

	s.set(Session{Authenticated: true, User: user})
	return nil
}

// ChangePassword replaces the account password after verifying the current
// one remotely.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if !s.Current().Authenticated {
		return gateway.AuthFailure(gateway.ErrNotAuthenticated, "not signed in")
	}
	return s.gw.ChangePassword(ctx, current, next)
}

// Current returns a copy of the active session.
func (s *Service) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.cur
	if cur.User != nil {
		user := *cur.User
		cur.User = &user
	}
	return cur
}

// Subscribe registers fn to run after every session transition.
func (s *Service) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Service) set(next Session) {
	s.mu.Lock()
	s.cur = next
	subs := make([]func(Session), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
