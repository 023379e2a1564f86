package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 5 * time.Second

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps values in Redis without expiry.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to Redis and checks the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	store := &RedisStore{
		client: rdb,
		ctx:    context.Background(),
	}

	ctx, cancel := store.opContext()
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return store, nil
}

func (r *RedisStore) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.ctx, redisOpTimeout)
}

func (r *RedisStore) Get(key string) (string, bool, error) {
	ctx, cancel := r.opContext()
	defer cancel()

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(key string, value string) error {
	ctx, cancel := r.opContext()
	defer cancel()
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) Delete(key string) error {
	ctx, cancel := r.opContext()
	defer cancel()
	return r.client.Del(ctx, key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
