package dataversion

import "context"

// Repository tracks a monotonically increasing version of each group's
// match/presence set. Cached rankings are keyed on it, so any write to a
// group's matches must Bump it.
type Repository interface {
	Current(ctx context.Context, groupID string) (int64, error)
	Bump(ctx context.Context, groupID string) (int64, error)
}
