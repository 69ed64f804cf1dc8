package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество команд Redis, которое использует кэш
// Реализуется *redis.Client
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
