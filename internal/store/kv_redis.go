package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV keeps durable state under a single redis key. Used when the
// host already runs redis and a local sqlite file is unwanted.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV builds a KV over an existing redis client. Keys are
// namespaced with prefix to keep a shared instance tidy.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "hibachi"
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error { return r.client.Close() }
