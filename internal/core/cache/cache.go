package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"recipe-recommender/internal/infrastructure/config"
)

// Store 推薦結果快取的共同介面
// 值為序列化後的推薦響應，鍵由 QueryKey 產生
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Close() error
}

// NewStore 依設定選擇快取實作
// 設定了 redis 位址時使用 redis，否則使用行程內記憶體快取；
// 快取停用時回傳 (nil, nil)，呼叫端以 nil 判斷略過快取
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.RedisAddr != "" {
		return NewRedisStore(cfg)
	}
	return NewManager(cfg), nil
}

// QueryKey 由查詢條件產生快取鍵
// 食材名稱先排序，確保同一組食材不因輸入順序產生不同鍵
func QueryKey(ingredients []string, topN int) string {
	sorted := make([]string, len(ingredients))
	copy(sorted, ingredients)
	sort.Strings(sorted)

	hash := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return fmt.Sprintf("recommend:%s:%d", hex.EncodeToString(hash[:]), topN)
}
