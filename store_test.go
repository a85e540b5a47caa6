package activitydb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func memoryConfig() Config {
	cfg := DefaultConfig()
	cfg.Backend = BackendMemory
	return cfg
}

func TestOpen_MemoryBackend(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, memoryConfig())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	if store.Kind() != BackendMemory {
		t.Errorf("expected memory backend, got %s", store.Kind())
	}
	if store.Activities == nil || store.Accounts == nil {
		t.Fatal("expected both collections bound")
	}
}

func TestOpen_FallsBackWhenMongoUnreachable(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Backend = BackendAuto
	// Port 1 refuses connections immediately.
	cfg.MongoURI = "mongodb://127.0.0.1:1/?directConnection=true"
	cfg.ProbeTimeout = 250 * time.Millisecond

	metrics := NewInMemoryMetrics()
	store, err := Open(ctx, cfg, WithMetrics(metrics))
	if err != nil {
		t.Fatalf("Open must absorb the probe failure, got: %v", err)
	}
	defer store.Close(ctx)

	if store.Kind() != BackendMemory {
		t.Errorf("expected fallback to memory, got %s", store.Kind())
	}
	if metrics.Counters[MetricProbeFailure] != 1 {
		t.Errorf("expected 1 probe failure recorded, got %d", metrics.Counters[MetricProbeFailure])
	}

	// The fallback is seeded like any other backend.
	n, err := store.Activities.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if want := int64(len(DefaultActivities())); n != want {
		t.Errorf("expected %d seeded activities, got %d", want, n)
	}
}

func TestOpen_RedisBackend(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.Backend = BackendRedis
	cfg.RedisAddr = mr.Addr()

	store, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if store.Kind() != BackendRedis {
		t.Errorf("expected redis backend, got %s", store.Kind())
	}
	n, err := store.Activities.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if want := int64(len(DefaultActivities())); n != want {
		t.Errorf("expected %d seeded activities, got %d", want, n)
	}
	if err := store.Close(ctx); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A second process against the same backend must not re-seed.
	store2, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer store2.Close(ctx)

	n, _ = store2.Activities.Count(ctx, nil)
	if want := int64(len(DefaultActivities())); n != want {
		t.Errorf("re-seed detected: expected %d activities, got %d", want, n)
	}
}

func TestOpen_FallsBackWhenRedisUnreachable(t *testing.T) {
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Backend = BackendRedis
	cfg.RedisAddr = "127.0.0.1:1"
	cfg.ProbeTimeout = 250 * time.Millisecond

	store, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open must absorb the probe failure, got: %v", err)
	}
	defer store.Close(ctx)

	if store.Kind() != BackendMemory {
		t.Errorf("expected fallback to memory, got %s", store.Kind())
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "cassette-tape"

	_, err := Open(context.Background(), cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestOpen_WithSeedDataOverride(t *testing.T) {
	ctx := context.Background()

	activities := []Document{
		scheduledDoc([]string{"Wednesday"}, "12:00", "13:00"),
	}
	store, err := Open(ctx, memoryConfig(), WithSeedData(activities, nil))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close(ctx)

	n, _ := store.Activities.Count(ctx, nil)
	if n != 1 {
		t.Errorf("expected 1 activity from override dataset, got %d", n)
	}
	n, _ = store.Accounts.Count(ctx, nil)
	if n != 0 {
		t.Errorf("expected no accounts, got %d", n)
	}
}
