package persistence

import (
	"context"

	"github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/redis"
)

// RedisKV stores slots as namespaced string keys in Redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an established Redis client.
func NewRedisKV(client *redis.Client) (*RedisKV, error) {
	if client == nil {
		return nil, errors.New(errors.CodeValidation, "redis client is required")
	}
	return &RedisKV{client: client}, nil
}

func (r *RedisKV) Get(ctx context.Context, slot string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.client.SlotKey(slot))
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, errors.Wrap(errors.CodeDependency, err, "reading slot from redis")
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, slot, value string) error {
	if err := r.client.Set(ctx, r.client.SlotKey(slot), value, 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing slot to redis")
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, r.client.SlotKey(slot)); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting slot from redis")
	}
	return nil
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
