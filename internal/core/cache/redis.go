package cache

import (
	"context"
	"fmt"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore redis 快取，多實例部署時共用推薦結果
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 redis 快取並測試連線
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已初始化",
		zap.String("addr", cfg.Cache.RedisAddr),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存，未命中時回傳 ErrCacheMiss
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	common.LogCacheHit("redis", key)
	return value, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, key, value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
