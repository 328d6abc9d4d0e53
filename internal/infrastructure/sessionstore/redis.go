package sessionstore

import (
	"context"

	"resume-review/internal/infrastructure/cache"
	"resume-review/internal/review"

	"github.com/google/uuid"
)

const jobKeyPrefix = "session:job:"

// RedisStore persists each reviewer's active job in Redis so a session
// survives reconnects and server restarts. No TTL: the job stays until the
// reviewer logs out.
type RedisStore struct {
	cache *cache.Redis
}

func NewRedisStore(c *cache.Redis) *RedisStore {
	return &RedisStore{cache: c}
}

var _ review.SessionStore = (*RedisStore)(nil)

func (s *RedisStore) SaveJob(ctx context.Context, userID uuid.UUID, jobID string) error {
	return s.cache.SetString(ctx, jobKeyPrefix+userID.String(), jobID, 0)
}

func (s *RedisStore) LoadJob(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	return s.cache.GetString(ctx, jobKeyPrefix+userID.String())
}

func (s *RedisStore) ClearJob(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Delete(ctx, jobKeyPrefix+userID.String())
}
