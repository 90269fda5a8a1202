package team

import "fmt"

// Team is a side drawn inside a racha. The ranking engine treats it as an
// aggregation key plus display payload.
type Team struct {
	ID      string
	GroupID string
	Name    string
	Color   string
	LogoURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.GroupID == "" {
		return fmt.Errorf("team group id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
