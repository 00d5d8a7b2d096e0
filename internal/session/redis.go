package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parkassist/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat:ctx:"

// RedisStore persists conversation contexts as JSON values with a TTL
// refreshed on every Put.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    defaultTTL(ttl),
	}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*models.ConversationContext, error) {
	val, err := s.client.Get(ctx, keyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var cc models.ConversationContext
	if err := json.Unmarshal([]byte(val), &cc); err != nil {
		// A corrupt value is as good as a miss; drop it.
		s.client.Del(ctx, keyPrefix+userID)
		return nil, ErrNotFound
	}
	return &cc, nil
}

func (s *RedisStore) Put(ctx context.Context, userID string, cc *models.ConversationContext) error {
	cc.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+userID, data, s.ttl).Err()
}

func (s *RedisStore) Evict(ctx context.Context, userID string) error {
	return s.client.Del(ctx, keyPrefix+userID).Err()
}
