package memory

import (
	"context"
	"sync"
)

type DataVersionRepository struct {
	mu       sync.Mutex
	versions map[string]int64
}

func NewDataVersionRepository() *DataVersionRepository {
	return &DataVersionRepository{versions: make(map[string]int64)}
}

func (r *DataVersionRepository) Current(_ context.Context, groupID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.versions[groupID], nil
}

func (r *DataVersionRepository) Bump(_ context.Context, groupID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.versions[groupID]++
	return r.versions[groupID], nil
}
