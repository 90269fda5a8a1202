// Package cache decorates read-mostly repositories with an in-process TTL
// cache. Match data is never cached here; rankings cache on data versions.
package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/team"
	basecache "github.com/riskibarqy/racha-league/internal/platform/cache"
)

type GroupRepository struct {
	next group.Repository
	list *basecache.Store[[]group.Group]
	byID *basecache.Store[cachedByID[group.Group]]
}

func NewGroupRepository(next group.Repository, ttl time.Duration) *GroupRepository {
	return &GroupRepository{
		next: next,
		list: basecache.NewStore[[]group.Group](ttl),
		byID: basecache.NewStore[cachedByID[group.Group]](ttl),
	}
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	items, _, err := r.list.GetOrLoad(ctx, "group:list", func(ctx context.Context) ([]group.Group, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return append([]group.Group(nil), items...), nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	cached, _, err := r.byID.GetOrLoad(ctx, "group:id:"+groupID, func(ctx context.Context) (cachedByID[group.Group], error) {
		item, exists, err := r.next.GetByID(ctx, groupID)
		return cachedByID[group.Group]{value: item, exists: exists}, err
	})
	if err != nil {
		return group.Group{}, false, err
	}
	return cached.value, cached.exists, nil
}

type TeamRepository struct {
	next team.Repository
	list *basecache.Store[[]team.Team]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{next: next, list: basecache.NewStore[[]team.Team](ttl)}
}

func (r *TeamRepository) ListByGroup(ctx context.Context, groupID string) ([]team.Team, error) {
	items, err := r.load(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return append([]team.Team(nil), items...), nil
}

// GetByID answers from the cached group list so a lookup never costs an extra round trip.
func (r *TeamRepository) GetByID(ctx context.Context, groupID, teamID string) (team.Team, bool, error) {
	items, err := r.load(ctx, groupID)
	if err != nil {
		return team.Team{}, false, err
	}
	for _, item := range items {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) load(ctx context.Context, groupID string) ([]team.Team, error) {
	items, _, err := r.list.GetOrLoad(ctx, "team:list:"+groupID, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByGroup(ctx, groupID)
	})
	return items, err
}

type AthleteRepository struct {
	next athlete.Repository
	list *basecache.Store[[]athlete.Athlete]
}

func NewAthleteRepository(next athlete.Repository, ttl time.Duration) *AthleteRepository {
	return &AthleteRepository{next: next, list: basecache.NewStore[[]athlete.Athlete](ttl)}
}

func (r *AthleteRepository) ListByGroup(ctx context.Context, groupID string) ([]athlete.Athlete, error) {
	items, _, err := r.list.GetOrLoad(ctx, "athlete:list:"+groupID, func(ctx context.Context) ([]athlete.Athlete, error) {
		return r.next.ListByGroup(ctx, groupID)
	})
	if err != nil {
		return nil, err
	}
	return append([]athlete.Athlete(nil), items...), nil
}

type cachedByID[T any] struct {
	value  T
	exists bool
}
