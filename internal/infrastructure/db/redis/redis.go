package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultOpTimeout   = 500 * time.Millisecond
)

// Config holds what the identity cache needs to reach Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds both dialing and the startup ping.
	DialTimeout time.Duration
}

// Connect returns a client for cfg after a successful PING. The cache sits
// on the auth path, so reads and writes get short timeouts.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  defaultOpTimeout,
		WriteTimeout: defaultOpTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dial)
	defer cancel()

	if err := Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping reports whether the server answers. Used at startup and by the
// readiness check.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
