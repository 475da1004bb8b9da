package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"startupcopilot/internal/domain"
)

func TestLevelCacheServesSnapshotWithinTTL(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC)
	calls := 0
	fetch := func(context.Context) ([]domain.LevelDefinition, error) {
		calls++
		return []domain.LevelDefinition{
			{Level: 1, Title: "Новичок", MinXP: 0},
			{Level: 2, Title: "Бывалый", MinXP: 200},
		}, nil
	}

	c := NewLevelCache(fetch, 5*time.Minute, func() time.Time { return clock })

	for i := 0; i < 10; i++ {
		if got := c.Get(ctx); len(got) != 2 {
			t.Fatalf("defs=%d, want 2", len(got))
		}
	}
	if calls != 1 {
		t.Fatalf("fetch calls within TTL=%d, want 1", calls)
	}

	clock = clock.Add(6 * time.Minute)
	c.Get(ctx)
	if calls != 2 {
		t.Fatalf("fetch calls after expiry=%d, want 2", calls)
	}
}

func TestLevelCacheFallsBackOnError(t *testing.T) {
	fetch := func(context.Context) ([]domain.LevelDefinition, error) {
		return nil, errors.New("db down")
	}
	c := NewLevelCache(fetch, 0, nil)
	defs := c.Get(context.Background())
	if len(defs) != 5 || defs[0].Title != "Dreamer" {
		t.Fatalf("fallback not served: %+v", defs)
	}
}

func TestLevelCacheFallsBackOnInvalidConfig(t *testing.T) {
	fetch := func(context.Context) ([]domain.LevelDefinition, error) {
		// Нет уровня 1 с нулевым порогом.
		return []domain.LevelDefinition{{Level: 3, Title: "x", MinXP: 700}}, nil
	}
	c := NewLevelCache(fetch, 0, nil)
	if defs := c.Get(context.Background()); len(defs) != 5 {
		t.Fatalf("invalid config not replaced by fallback: %+v", defs)
	}
}
