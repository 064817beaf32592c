package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// OpenRedis returns a client for addr, or nil when addr is empty or the
// server is unreachable. Callers treat a nil client as "caching disabled";
// the application runs fine without it.
func OpenRedis(addr string) *redis.Client {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, settings caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		slog.Error("failed to connect to redis, caching disabled", "error", err)
		return nil
	}

	slog.Info("connected to redis", "addr", addr)
	return rdb
}
