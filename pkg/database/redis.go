package database

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const defaultRedisPoolSize = 50

func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	poolSize, minIdle := cfg.PoolSize, cfg.MinIdleConns
	if poolSize <= 0 {
		poolSize = defaultRedisPoolSize
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	logger.Log.Info("Redis connection established",
		zap.String("addr", addr),
		zap.Int("poolSize", poolSize),
		zap.Int("minIdleConns", minIdle))
	return rdb, nil
}
