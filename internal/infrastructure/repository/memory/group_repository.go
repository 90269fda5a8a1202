package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/racha-league/internal/domain/group"
)

type GroupRepository struct {
	mu     sync.RWMutex
	items  map[string]group.Group
	orders []string
}

func NewGroupRepository(groups []group.Group) *GroupRepository {
	items := make(map[string]group.Group, len(groups))
	orders := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, dup := items[g.ID]; !dup {
			orders = append(orders, g.ID)
		}
		items[g.ID] = g
	}

	return &GroupRepository{items: items, orders: orders}
}

func (r *GroupRepository) List(_ context.Context) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[groupID]
	return g, ok, nil
}
