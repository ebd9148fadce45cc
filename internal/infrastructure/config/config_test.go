package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Data.Source != DataSourceEmbedded {
		t.Fatalf("expected embedded data source, got %q", cfg.Data.Source)
	}
	if cfg.Cache.Backend != CacheBackendMemory || cfg.Cache.TTL != 10*time.Minute {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if cfg.Session.TTL != 30*time.Minute || cfg.Session.CookieName == "" {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "file")
	t.Setenv("DATA_PATH", "/tmp/recipes.yaml")
	t.Setenv("APP_SESSION_TTL", "5m")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Data.Source != DataSourceFile || cfg.Data.Path != "/tmp/recipes.yaml" {
		t.Fatalf("unexpected data config: %+v", cfg.Data)
	}
	if cfg.Session.TTL != 5*time.Minute {
		t.Fatalf("expected session ttl 5m, got %s", cfg.Session.TTL)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		wantErr string
	}{
		{"bad port", map[string]any{"server.port": 0}, "invalid server port"},
		{"file without path", map[string]any{"data.source": DataSourceFile}, "data.path is required"},
		{"url without url", map[string]any{"data.source": DataSourceURL}, "data.url is required"},
		{"unknown source", map[string]any{"data.source": "ftp"}, "unknown data source"},
		{"unknown cache backend", map[string]any{"cache.backend": "memcached"}, "unknown cache backend"},
		{"zero cache size", map[string]any{"cache.max_size": 0}, "invalid cache max size"},
		{"bad rate limit", map[string]any{"rate_limit.requests": 0}, "invalid rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCacheDisabledSkipsCacheValidation(t *testing.T) {
	v := viper.New()
	v.Set("cache.enabled", false)
	v.Set("cache.max_size", 0)
	if _, err := Load(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
