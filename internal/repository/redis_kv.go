package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore implements KVStore on a Redis (or Dragonfly) server. Values
// never expire.
type RedisKVStore struct {
	client *redis.Client
}

// ParseRedisURL validates a redis:// connection URL.
func ParseRedisURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return opts, nil
}

// NewRedisKVStore connects and pings the server.
func NewRedisKVStore(ctx context.Context, url string) (*RedisKVStore, error) {
	opts, err := ParseRedisURL(url)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &RedisKVStore{client: client}, nil
}

func (r *RedisKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (r *RedisKVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Close shuts down the client.
func (r *RedisKVStore) Close() error {
	return r.client.Close()
}
