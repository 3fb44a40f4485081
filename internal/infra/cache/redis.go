package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/tgcs/experience-api/internal/config"
)

const defaultDialTimeout = 5 * time.Second

func dialTimeout(cfg config.RedisCfg) time.Duration {
	if cfg.DialTimeoutSec <= 0 {
		return defaultDialTimeout
	}
	return time.Duration(cfg.DialTimeoutSec) * time.Second
}

// clientOptions maps the redis section onto go-redis options. A non-empty
// appName tags session connections in CLIENT LIST.
func clientOptions(cfg config.RedisCfg, appName string) *redis.Options {
	opts := &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout(cfg),
	}
	if appName != "" {
		opts.ClientName = appName + "-sessions"
	}
	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

// Dial opens the session redis and fails when it does not answer a PING
// within the dial timeout.
func Dial(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(clientOptions(cfg.Redis, cfg.App.Name))

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout(cfg.Redis))
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
	}
	return rdb, nil
}

// RegisterOpenTelemetryPlugin must run after telemetry.SetupTracing so the
// hook picks up the global tracer provider. Statements stay out of spans
// since session keys carry live session ids.
func RegisterOpenTelemetryPlugin(rdb *redis.Client) error {
	return redisotel.InstrumentTracing(rdb, redisotel.WithDBStatement(false))
}
