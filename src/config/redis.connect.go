package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"filmoasis/src/logging"
)

// ConnectRedis returns nil when Redis is not configured.
func ConnectRedis(ctx context.Context, s RedisSettings) (redis.UniversalClient, error) {
	if !s.Enabled() {
		logging.Info().Msg("Redis not configured, catalog events stay in-process")
		return nil, nil
	}

	var rdb redis.UniversalClient
	if s.Mode == "sentinel" {
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       s.MasterName,
			SentinelAddrs:    s.Sentinels,
			Password:         s.Password,
			SentinelPassword: s.Password,
			DB:               0,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", s.Host, s.Port),
			Password: s.Password,
			DB:       0,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis (%s mode): %w", modeName(s), err)
	}

	logging.Info().Str("mode", modeName(s)).Str("reply", pong).Msg("Redis connected")
	return rdb, nil
}

func modeName(s RedisSettings) string {
	if s.Mode == "" {
		return "standalone"
	}
	return s.Mode
}
