// Package calendar реализует Redis-кеш календарной проекции.
// Проекция не авторитетна, поэтому кеш с TTL безопасен; коммиты
// бронирований инвалидируют ключи врача best-effort.
package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// ErrCacheMiss возвращается, когда ключ отсутствует в кеше
var ErrCacheMiss = errors.New("calendar.cache: cache miss")

// Cache кеш событий календаря по ключу врач+диапазон
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает кеш календаря с заданным TTL
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func key(professionalID int64, from, to time.Time) string {
	return fmt.Sprintf("calendar:%d:%s:%s",
		professionalID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
}

// Get возвращает закешированные события или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.CalendarEvent, error) {
	raw, err := c.client.Get(ctx, key(professionalID, from, to)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("calendar.cache: get: %w", err)
	}

	var events []*domain.CalendarEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("calendar.cache: unmarshal: %w", err)
	}

	return events, nil
}

// Set кладёт события в кеш с TTL
func (c *Cache) Set(ctx context.Context, professionalID int64, from, to time.Time, events []*domain.CalendarEvent) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("calendar.cache: marshal: %w", err)
	}

	if err := c.client.Set(ctx, key(professionalID, from, to), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("calendar.cache: set: %w", err)
	}

	return nil
}

// Invalidate удаляет все закешированные диапазоны врача.
// Вызывается после коммита создания/переноса/отмены приёма.
func (c *Cache) Invalidate(ctx context.Context, professionalID int64) error {
	pattern := fmt.Sprintf("calendar:%d:*", professionalID)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("calendar.cache: del %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("calendar.cache: scan: %w", err)
	}

	return nil
}
