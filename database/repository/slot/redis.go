package slotRepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisSlotRepo stores slots as plain redis strings without expiry.
type RedisSlotRepo struct {
	client *redis.Client
}

// NewRedisSlotRepo wraps an already connected client.
func NewRedisSlotRepo(client *redis.Client) *RedisSlotRepo {
	return &RedisSlotRepo{client: client}
}

func (r *RedisSlotRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load slot: %w", err)
	}
	return data, true, nil
}

func (r *RedisSlotRepo) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

func (r *RedisSlotRepo) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
