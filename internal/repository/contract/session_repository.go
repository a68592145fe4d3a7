package contract

import (
	"context"
	"errors"

	"insight-center-be/pkg/store"
)

var ErrSessionStoreUnavailable = errors.New("session store unavailable")

// SessionRepository keeps one SessionState per session id. Implementations
// expire idle sessions; there is no explicit teardown.
type SessionRepository interface {
	Save(ctx context.Context, session *store.SessionState) error
	Get(ctx context.Context, sessionID string) (*store.SessionState, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
