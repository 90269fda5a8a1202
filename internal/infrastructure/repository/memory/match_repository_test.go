package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/match"
)

func TestMatchRepositoryListByGroupBetweenIsHalfOpen(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	repo := NewMatchRepository([]match.Match{
		{ID: "before", GroupID: "g", PlayedAt: base.Add(-time.Nanosecond)},
		{ID: "start", GroupID: "g", PlayedAt: base},
		{ID: "inside", GroupID: "g", PlayedAt: base.Add(time.Hour)},
		{ID: "end", GroupID: "g", PlayedAt: base.Add(2 * time.Hour)},
		{ID: "other", GroupID: "h", PlayedAt: base.Add(time.Hour)},
	})

	items, err := repo.ListByGroupBetween(context.Background(), "g", base, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("list between: %v", err)
	}
	if len(items) != 2 || items[0].ID != "start" || items[1].ID != "inside" {
		t.Fatalf("unexpected window: %+v", items)
	}
}

func TestMatchRepositoryUpsertReplacesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	repo := NewMatchRepository(nil)

	created, err := repo.Upsert(ctx, match.Match{ID: "late", GroupID: "g", PlayedAt: base.Add(time.Hour)})
	if err != nil || !created {
		t.Fatalf("upsert late: created=%v err=%v", created, err)
	}
	created, err = repo.Upsert(ctx, match.Match{ID: "early", GroupID: "g", PlayedAt: base})
	if err != nil || !created {
		t.Fatalf("upsert early: created=%v err=%v", created, err)
	}
	created, err = repo.Upsert(ctx, match.Match{ID: "late", GroupID: "g", PlayedAt: base.Add(time.Hour), ScoreA: 5})
	if err != nil || created {
		t.Fatalf("upsert late again: created=%v err=%v", created, err)
	}

	items, err := repo.ListByGroup(ctx, "g")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(items))
	}
	if items[0].ID != "early" || items[1].ID != "late" || items[1].ScoreA != 5 {
		t.Fatalf("unexpected matches: %+v", items)
	}
}

func TestMatchRepositoryUpsertRefusesMatchOfAnotherGroup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	repo := NewMatchRepository([]match.Match{{ID: "m1", GroupID: "a", PlayedAt: base, ScoreA: 1}})

	created, err := repo.Upsert(ctx, match.Match{ID: "m1", GroupID: "b", PlayedAt: base, ScoreA: 9})
	if !errors.Is(err, match.ErrOwnedByOtherGroup) {
		t.Fatalf("expected ErrOwnedByOtherGroup, got created=%v err=%v", created, err)
	}

	owned, _ := repo.ListByGroup(ctx, "a")
	if len(owned) != 1 || owned[0].ScoreA != 1 {
		t.Fatalf("group a match was modified: %+v", owned)
	}
	if other, _ := repo.ListByGroup(ctx, "b"); len(other) != 0 {
		t.Fatalf("expected no copy under group b, got %+v", other)
	}
}

func TestMatchRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository([]match.Match{{
		ID: "m", GroupID: "g", PlayedAt: time.Now(),
		Presences: []match.Presence{{AthleteID: "a", TeamID: "t", Goals: 1}},
	}})

	items, _ := repo.ListByGroup(ctx, "g")
	items[0].Presences[0].Goals = 99

	again, _ := repo.ListByGroup(ctx, "g")
	if again[0].Presences[0].Goals != 1 {
		t.Fatalf("stored presence was mutated: %+v", again[0].Presences[0])
	}
}

func TestDataVersionRepositoryBump(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewDataVersionRepository()

	if v, _ := repo.Current(ctx, "g"); v != 0 {
		t.Fatalf("expected initial version 0, got %d", v)
	}
	if v, _ := repo.Bump(ctx, "g"); v != 1 {
		t.Fatalf("expected version 1 after bump, got %d", v)
	}
	if v, _ := repo.Bump(ctx, "g"); v != 2 {
		t.Fatalf("expected version 2 after bump, got %d", v)
	}
	if v, _ := repo.Current(ctx, "other"); v != 0 {
		t.Fatalf("expected other group untouched, got %d", v)
	}
}
