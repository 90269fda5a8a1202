package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/team"
)

type countingGroupRepo struct {
	items []group.Group
	lists int
	gets  int
}

func (r *countingGroupRepo) List(context.Context) ([]group.Group, error) {
	r.lists++
	return r.items, nil
}

func (r *countingGroupRepo) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.gets++
	for _, g := range r.items {
		if g.ID == groupID {
			return g, true, nil
		}
	}
	return group.Group{}, false, nil
}

type countingTeamRepo struct {
	items []team.Team
	lists int
}

func (r *countingTeamRepo) ListByGroup(context.Context, string) ([]team.Team, error) {
	r.lists++
	return r.items, nil
}

func (r *countingTeamRepo) GetByID(context.Context, string, string) (team.Team, bool, error) {
	panic("cached team repository must answer GetByID from the list")
}

type countingAthleteRepo struct {
	items []athlete.Athlete
	lists int
}

func (r *countingAthleteRepo) ListByGroup(context.Context, string) ([]athlete.Athlete, error) {
	r.lists++
	return r.items, nil
}

func TestGroupRepository_CachesListAndMisses(t *testing.T) {
	ctx := context.Background()
	next := &countingGroupRepo{items: []group.Group{{ID: "g1", Name: "Racha"}}}
	repo := NewGroupRepository(next, time.Minute)

	for i := 0; i < 3; i++ {
		items, err := repo.List(ctx)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected list result: %+v err=%v", items, err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, exists, err := repo.GetByID(ctx, "missing"); err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
	}
	if next.lists != 1 || next.gets != 1 {
		t.Fatalf("expected one upstream call each, got lists=%d gets=%d", next.lists, next.gets)
	}
}

func TestTeamRepository_GetByIDUsesList(t *testing.T) {
	ctx := context.Background()
	next := &countingTeamRepo{items: []team.Team{{ID: "blue", GroupID: "g1", Name: "Azul"}}}
	repo := NewTeamRepository(next, time.Minute)

	item, exists, err := repo.GetByID(ctx, "g1", "blue")
	if err != nil || !exists || item.Name != "Azul" {
		t.Fatalf("unexpected team: %+v exists=%v err=%v", item, exists, err)
	}
	if _, exists, _ := repo.GetByID(ctx, "g1", "red"); exists {
		t.Fatalf("expected unknown team to be missing")
	}
	if next.lists != 1 {
		t.Fatalf("expected one upstream list, got %d", next.lists)
	}
}

func TestAthleteRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	next := &countingAthleteRepo{items: []athlete.Athlete{{ID: "a1", GroupID: "g1", Name: "Chico"}}}
	repo := NewAthleteRepository(next, time.Minute)

	first, _ := repo.ListByGroup(ctx, "g1")
	first[0].Name = "changed"

	second, _ := repo.ListByGroup(ctx, "g1")
	if second[0].Name != "Chico" {
		t.Fatalf("cached roster was mutated: %+v", second[0])
	}
	if next.lists != 1 {
		t.Fatalf("expected one upstream list, got %d", next.lists)
	}
}
