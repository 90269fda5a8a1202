package match

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrOwnedByOtherGroup is returned by Upsert when the match id is already
// stored under a different group.
var ErrOwnedByOtherGroup = errors.New("match belongs to another group")

// Repository exposes match persistence. Returned matches carry their presences.
type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]Match, error)
	ListByGroupBetween(ctx context.Context, groupID string, start, end time.Time) ([]Match, error)
	// Upsert stores item and reports whether it was new. It never moves a
	// match between groups.
	Upsert(ctx context.Context, item Match) (created bool, err error)
}
