package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "lc:session"

// RedisStorage persists the session slot in Redis under a fixed key, for
// server-side consumers of the client that share one storefront identity
// across processes.
type RedisStorage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStorage returns a Redis-backed slot. An empty key falls back to
// "lc:session"; ttl zero means the slot never expires on its own.
func NewRedisStorage(client *redis.Client, key string, ttl time.Duration) *RedisStorage {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStorage{client: client, key: key, ttl: ttl}
}

// Read implements Storage.
func (r *RedisStorage) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write implements Storage.
func (r *RedisStorage) Write(ctx context.Context, data []byte) error {
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}

// Delete implements Storage.
func (r *RedisStorage) Delete(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
