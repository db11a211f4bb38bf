package oauth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth_state:"

type redisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStateStore returns a Redis-backed store so multiple auth-service
// replicas share pending login flows. Expiry is enforced by key TTL.
func NewRedisStateStore(client *redis.Client, ttl time.Duration) StateStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisStateStore{client: client, ttl: ttl}
}

func (s *redisStateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, stateKeyPrefix+state, "1", s.ttl).Err(); err != nil {
		return "", err
	}
	return state, nil
}

func (s *redisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, stateKeyPrefix+state).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *redisStateStore) Count(ctx context.Context) (int, error) {
	keys, err := s.client.Keys(ctx, stateKeyPrefix+"*").Result()
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *redisStateStore) Clear(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, stateKeyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
