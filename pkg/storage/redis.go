// pkg/storage/redis.go
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	pingTimeout = 5 * time.Second
	opTimeout   = 3 * time.Second
)

// NewRedisClient подключается к Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("подключение к Redis %s: %w", addr, err)
	}
	return client, nil
}

// SeenStore помнит ключи уже обработанных событий.
type SeenStore struct {
	client *redis.Client
}

func NewSeenStore(client *redis.Client) *SeenStore {
	return &SeenStore{client: client}
}

// MarkSeen атомарно помечает ключ. Возвращает true, если ключ встречен впервые.
func (s *SeenStore) MarkSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.client.SetNX(ctx, key, 1, ttl).Result()
}
