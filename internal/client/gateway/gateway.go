package gateway

import (
	"context"

	"github.com/mkravets/dailynotes/internal/client/models"
)

// Gateway is the only component that performs network I/O against the
// remote notes service and its auth provider.
//
// Every call is attributed to the ambient session token held by the
// implementation; callers never pass an identity. Operations return plain
// data or a *Failure, never panic across the boundary, and never retry on
// their own — retry policy belongs to the caller.
//
// ListNotes returns notes ordered by creation time descending, newest
// first. The UI relies on this ordering and must not re-sort.
type Gateway interface {
	Close() error

	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, name string) (*models.User, error)
	ChangePassword(ctx context.Context, current, next string) error

	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}
