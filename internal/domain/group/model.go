package group

import "fmt"

// Group is one racha: the tenant every roster, team and match belongs to.
type Group struct {
	ID       string
	Name     string
	City     string
	Timezone string
}

func (g Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}

	return nil
}
