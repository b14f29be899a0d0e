package tasks

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/config"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the list in a single Redis LIST. Each operation runs in a
// MULTI/EXEC block together with the LRANGE that reads the result back.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client, key: cfg.Key}, nil
}

func (r *RedisStore) Add(ctx context.Context, name string) ([]string, error) {
	var names *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.key, name)
		names = pipe.LRange(ctx, r.key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}
	return orEmpty(names.Val()), nil
}

func (r *RedisStore) Remove(ctx context.Context, name string) ([]string, bool, error) {
	var (
		removed *redis.IntCmd
		names   *redis.StringSliceCmd
	)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// count 1 drops the first match scanning from the head.
		removed = pipe.LRem(ctx, r.key, 1, name)
		names = pipe.LRange(ctx, r.key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("removing task: %w", err)
	}
	return orEmpty(names.Val()), removed.Val() > 0, nil
}

func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	names, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return orEmpty(names), nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close(context.Context) error {
	return r.client.Close()
}
