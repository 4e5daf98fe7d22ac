package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL matches the token validity window; the marker expires with
// the last token that could have been issued for it.
const sessionTTL = 2 * time.Hour

// SessionRecorder keeps a per-account marker of the most recent session
// establishment (login or registration). Tokens stay stateless; the
// marker only backs operational visibility.
type SessionRecorder struct {
	client *redis.Client
}

// NewSessionRecorder creates a SessionRecorder wrapping the given Redis client.
func NewSessionRecorder(client *redis.Client) *SessionRecorder {
	return &SessionRecorder{client: client}
}

// Record stores the session marker with the current timestamp.
func (s *SessionRecorder) Record(ctx context.Context, accountID string) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	if err := s.client.Set(ctx, s.key(accountID), ts, sessionTTL).Err(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Clear drops the session marker, e.g. when the account is deleted.
func (s *SessionRecorder) Clear(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, s.key(accountID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionRecorder) key(accountID string) string {
	return fmt.Sprintf("session:%s", accountID)
}
