package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]Team, error)
	GetByID(ctx context.Context, groupID, teamID string) (Team, bool, error)
}
