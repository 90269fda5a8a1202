package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/match"
)

// MatchRepository stores matches per group ordered by kick-off. Reads hand out
// copies so callers can never mutate the stored presences.
type MatchRepository struct {
	mu      sync.RWMutex
	byGroup map[string][]match.Match
	// owner maps a match id to its group; ids are unique across groups.
	owner map[string]string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{
		byGroup: make(map[string][]match.Match),
		owner:   make(map[string]string),
	}
	for _, m := range matches {
		r.put(m)
	}
	return r
}

func (r *MatchRepository) ListByGroup(_ context.Context, groupID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byGroup[groupID]
	out := make([]match.Match, 0, len(items))
	for _, m := range items {
		out = append(out, cloneMatch(m))
	}
	return out, nil
}

// ListByGroupBetween returns matches played in [start, end).
func (r *MatchRepository) ListByGroupBetween(_ context.Context, groupID string, start, end time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.byGroup[groupID] {
		if m.PlayedAt.Before(start) || !m.PlayedAt.Before(end) {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	return out, nil
}

func (r *MatchRepository) Upsert(_ context.Context, item match.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.GroupID) == "" || strings.TrimSpace(item.ID) == "" {
		return false, errors.New("match id and group id are required")
	}
	if owner, ok := r.owner[item.ID]; ok && owner != item.GroupID {
		return false, errors.Wrapf(match.ErrOwnedByOtherGroup, "match %s", item.ID)
	}
	return r.put(item), nil
}

// put reports whether item was inserted rather than replaced.
func (r *MatchRepository) put(item match.Match) bool {
	groupID := strings.TrimSpace(item.GroupID)
	if groupID == "" || strings.TrimSpace(item.ID) == "" {
		return false
	}

	rows := r.byGroup[groupID]
	updated := false
	for idx := range rows {
		if rows[idx].ID == item.ID {
			rows[idx] = cloneMatch(item)
			updated = true
			break
		}
	}
	if !updated {
		rows = append(rows, cloneMatch(item))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].PlayedAt.Equal(rows[j].PlayedAt) {
			return rows[i].PlayedAt.Before(rows[j].PlayedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	r.byGroup[groupID] = rows
	r.owner[item.ID] = groupID
	return !updated
}

func cloneMatch(m match.Match) match.Match {
	m.Presences = append([]match.Presence(nil), m.Presences...)
	return m
}
