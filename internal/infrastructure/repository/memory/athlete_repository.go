package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
)

// AthleteRepository keeps each roster in insertion order, which doubles as
// the canonical order used to break ranking ties.
type AthleteRepository struct {
	mu      sync.RWMutex
	byGroup map[string][]athlete.Athlete
}

func NewAthleteRepository(athletes []athlete.Athlete) *AthleteRepository {
	byGroup := make(map[string][]athlete.Athlete)
	for _, a := range athletes {
		byGroup[a.GroupID] = append(byGroup[a.GroupID], a)
	}

	return &AthleteRepository{byGroup: byGroup}
}

func (r *AthleteRepository) ListByGroup(_ context.Context, groupID string) ([]athlete.Athlete, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster := r.byGroup[groupID]
	out := make([]athlete.Athlete, 0, len(roster))
	out = append(out, roster...)
	return out, nil
}
