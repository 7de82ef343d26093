package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultAddr     = "localhost:6379"
	defaultPoolSize = 8

	// clientName tags every connection so CLIENT LIST attributes the
	// cache traffic to this service.
	clientName = "tracking-system"
)

// Config captures the settings for the document-cache connection.
type Config struct {
	Addr     string
	DB       int
	PoolSize int
	Timeout  time.Duration
}

// clientOptions translates Config into go-redis options. Track lookups hit
// the cache before every fetch, so idle connections are kept warm.
func clientOptions(cfg Config) *redis.Options {
	opts := &redis.Options{
		ClientName: clientName,
		Addr:       cfg.Addr,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
	}
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	opts.MinIdleConns = opts.PoolSize / 2
	return opts
}

// Connect initialises the cache client and validates connectivity with a ping.
// A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(clientOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
