package repository

import (
	"context"
	"fmt"

	"hotel/internal/config"

	"github.com/redis/go-redis/v9"
)

const bookingIDKeyPrefix = "hotel:booking_id:"

type RedisIDRegistry struct {
	client *redis.Client
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisIDRegistry(client *redis.Client) *RedisIDRegistry {
	return &RedisIDRegistry{client: client}
}

func (r *RedisIDRegistry) Reserve(ctx context.Context, id string) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	ok, err := r.client.SetNX(ctx, bookingIDKeyPrefix+id, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve booking id in redis: %w", err)
	}
	return ok, nil
}

// Seed marks ids as issued without reporting collisions.
func (r *RedisIDRegistry) Seed(ctx context.Context, ids []string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(ids) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, id := range ids {
		pipe.SetNX(ctx, bookingIDKeyPrefix+id, 1, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed booking ids in redis: %w", err)
	}
	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
