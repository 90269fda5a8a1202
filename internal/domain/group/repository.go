package group

import "context"

// Repository describes group persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Group, error)
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
}
