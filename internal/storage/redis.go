package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sneakhaus/storefront/internal/domain"
)

// Abandoned carts and theme preferences expire after this long without a
// mutation refreshing the key.
const defaultTTL = 30 * 24 * time.Hour

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    defaultTTL,
	}
}

// RedisStorage implements CartStorage and PrefStorage on a single Redis
// instance, one key per session.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadTheme(ctx context.Context, sessionID string) (string, error) {
	theme, err := r.client.Get(ctx, themeKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return theme, nil
}

func (r *RedisStorage) SaveTheme(ctx context.Context, sessionID, theme string) error {
	if err := r.client.Set(ctx, themeKey(sessionID), theme, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func themeKey(sessionID string) string {
	return fmt.Sprintf("theme:%s", sessionID)
}
