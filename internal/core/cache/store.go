// Package cache 快取過濾結果，鍵為正規化後的過濾條件，值為食譜 ID 清單。
package cache

import (
	"context"
	"fmt"

	"recipe-browser/internal/infrastructure/config"
)

// Store 過濾結果快取
type Store interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, ids []string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取，未啟用時回傳 nil
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Cache.Backend)
	}
}
