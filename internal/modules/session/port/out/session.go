package out

import (
	"context"

	"classsign/internal/modules/session/domain"
)

// Authenticator exchanges a student identifier for a Session.
type Authenticator interface {
	Authenticate(ctx context.Context, studentID string) (domain.Session, error)
}

// SessionStore holds the session for the lifetime of the process only.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}
