package athlete

import "context"

// Repository describes athlete persistence needs from use cases.
// ListByGroup returns athletes in roster order.
type Repository interface {
	ListByGroup(ctx context.Context, groupID string) ([]Athlete, error)
}
