package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
)

// NewOptional returns a Redis client for the registration count cache,
// or nil when the server cannot be reached. The cache only shortcuts
// the landing-page counter, so a missing Redis is not an error: callers
// treat a nil client as "cache disabled" and read the count from the
// database.
func NewOptional(cfg config.RedisConfig, logr *zap.Logger) *redis.Client {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if logr != nil {
			logr.Warn("redis unavailable, count cache disabled",
				zap.String("addr", addr),
				zap.Error(err),
			)
		}
		return nil
	}

	return client
}
