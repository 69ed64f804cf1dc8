// Package cache кэширует справочные данные в Redis.
// Ошибки Redis не прерывают запрос: промах кэша, запись в лог, чтение из БД.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

const instrumentTypesKey = "instrument-types"

// Cache кэш каталога. nil *Cache означает выключенный кэш.
type Cache struct {
	client Client
	prefix string
	ttl    time.Duration
	logger Logger
}

// New создает кэш поверх клиента Redis
func New(client Client, prefix string, ttl time.Duration, logger Logger) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// NewRedisClient создает клиента Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	return client, nil
}

// typeEntry формат хранения типа прибора в кэше
type typeEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Model       string `json:"model"`
	Description string `json:"description"`
	AccessLevel string `json:"accessLevel"`
}

// GetInstrumentTypes возвращает каталог из кэша; ok=false при промахе или ошибке
func (c *Cache) GetInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.key(instrumentTypesKey)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache: get instrument types: %v", err)
		}
		return nil, false
	}

	var entries []typeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.logger.Warn("cache: decode instrument types: %v", err)
		return nil, false
	}

	result := make([]*domain.InstrumentType, 0, len(entries))
	for _, e := range entries {
		result = append(result, &domain.InstrumentType{
			ID:          e.ID,
			Name:        e.Name,
			Model:       e.Model,
			Description: e.Description,
			AccessLevel: domain.AccessLevel(e.AccessLevel),
		})
	}

	return result, true
}

// SetInstrumentTypes сохраняет каталог в кэш на ttl
func (c *Cache) SetInstrumentTypes(ctx context.Context, types []*domain.InstrumentType) {
	if c == nil {
		return
	}

	entries := make([]typeEntry, 0, len(types))
	for _, t := range types {
		entries = append(entries, typeEntry{
			ID:          t.ID,
			Name:        t.Name,
			Model:       t.Model,
			Description: t.Description,
			AccessLevel: string(t.AccessLevel),
		})
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("cache: encode instrument types: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key(instrumentTypesKey), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set instrument types: %v", err)
	}
}

// InvalidateInstrumentTypes удаляет каталог из кэша
func (c *Cache) InvalidateInstrumentTypes(ctx context.Context) {
	if c == nil {
		return
	}

	if err := c.client.Del(ctx, c.key(instrumentTypesKey)).Err(); err != nil {
		c.logger.Warn("cache: invalidate instrument types: %v", err)
	}
}

func (c *Cache) key(name string) string {
	if c.prefix == "" {
		return name
	}
	return c.prefix + ":" + name
}
