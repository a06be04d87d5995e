package cache

import (
	"context"
	"testing"
	"time"

	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"
)

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestQueryKeyOrderIndependent(t *testing.T) {
	a := QueryKey([]string{"Tomat", "Wortel"}, 10)
	b := QueryKey([]string{"Wortel", "Tomat"}, 10)
	if a != b {
		t.Errorf("ingredient order changed the key: %s vs %s", a, b)
	}
}

func TestQueryKeyDistinguishesTopN(t *testing.T) {
	a := QueryKey([]string{"Tomat"}, 10)
	b := QueryKey([]string{"Tomat"}, 20)
	if a == b {
		t.Error("different topN produced the same key")
	}
}

func TestQueryKeyDistinguishesIngredients(t *testing.T) {
	a := QueryKey([]string{"Tomat"}, 10)
	b := QueryKey([]string{"Wortel"}, 10)
	if a == b {
		t.Error("different ingredients produced the same key")
	}
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); err != common.ErrCacheMiss {
		t.Errorf("Get(missing) err = %v, want ErrCacheMiss", err)
	}

	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v" {
		t.Errorf("Get(k) = %q, want %q", got, "v")
	}
}

func TestManagerTTLExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.TTL = 10 * time.Millisecond
	m := NewManager(cfg)
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := m.Get(ctx, "k"); err != common.ErrCacheMiss {
		t.Errorf("expired entry err = %v, want ErrCacheMiss", err)
	}
}

func TestManagerLRUEviction(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.MaxSize = 2
	m := NewManager(cfg)
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(ctx, "b", "2"); err != nil {
		t.Fatal(err)
	}

	// Touch "a" so "b" becomes the LRU candidate on access count
	if _, err := m.Get(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	// Third insert evicts one entry instead of failing
	if err := m.Set(ctx, "c", "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "c"); err != nil {
		t.Errorf("newly set key missing after eviction: %v", err)
	}
	if _, err := m.Get(ctx, "b"); err != common.ErrCacheMiss {
		t.Errorf("expected b to be evicted, err = %v", err)
	}
}

func TestNewStoreDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false

	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if store != nil {
		t.Error("disabled cache should return nil store")
	}
}

func TestNewStoreMemoryFallback(t *testing.T) {
	store, err := NewStore(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if store == nil {
		t.Fatal("enabled cache returned nil store")
	}
	defer store.Close()

	if _, ok := store.(*Manager); !ok {
		t.Errorf("store without redis addr = %T, want *Manager", store)
	}
}
