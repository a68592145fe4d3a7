package memory

import (
	"context"
	"time"

	"insight-center-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps session state in process memory. Entries expire
// ttl after their last Save and are purged every cleanup interval. Callers
// get and store copies.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.SessionState) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.SessionState, bool, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.SessionState).Clone(), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
