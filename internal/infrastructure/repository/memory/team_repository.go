package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/racha-league/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	byGroup map[string][]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byGroup := make(map[string][]team.Team)
	for _, item := range teams {
		byGroup[item.GroupID] = append(byGroup[item.GroupID], item)
	}

	return &TeamRepository{byGroup: byGroup}
}

func (r *TeamRepository) ListByGroup(_ context.Context, groupID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := r.byGroup[groupID]
	out := make([]team.Team, 0, len(teams))
	out = append(out, teams...)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, groupID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byGroup[groupID] {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}
