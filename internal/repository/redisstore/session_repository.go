package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"insight-center-be/internal/repository/contract"
	"insight-center-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "insight:session:"

// SessionRepository stores session state as JSON in Redis so several
// instances behind a load balancer share it.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

func (r *SessionRepository) Save(ctx context.Context, session *store.SessionState) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", contract.ErrSessionStoreUnavailable, err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.SessionState, bool, error) {
	data, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", contract.ErrSessionStoreUnavailable, err)
	}

	var session store.SessionState
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt entry is treated as an expired session.
		return nil, false, nil
	}
	return &session, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", contract.ErrSessionStoreUnavailable, err)
	}
	return nil
}
