package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/bumpkit/pkg/cache"
	"github.com/matzehuels/bumpkit/pkg/config"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"redis://:secret@localhost:6379/0", "redis://:xxxxx@localhost:6379/0"},
		{"redis://localhost:6379", "redis://localhost:6379"},
		{"mongodb://user:pw@db:27017", "mongodb://user:xxxxx@db:27017"},
	}
	for _, tt := range tests {
		if got := redactURL(tt.in); got != tt.want {
			t.Errorf("redactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	store, err := openCache(ctx, cfg)
	if err != nil {
		t.Fatalf("openCache(file) error = %v", err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("openCache(file) = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}
	if got := cacheLocation(cfg, store); got != "Directory: "+cfg.Cache.Dir {
		t.Errorf("cacheLocation() = %q", got)
	}

	cfg.Cache.Backend = config.CacheNone
	store, err = openCache(ctx, cfg)
	if err != nil {
		t.Fatalf("openCache(none) error = %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("openCache(none) = %T, want *cache.NullCache", store)
	}
}
