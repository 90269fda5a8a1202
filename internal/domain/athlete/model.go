package athlete

import (
	"fmt"
	"strings"
)

// Position represents the playing position categories of a racha roster.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition accepts the short codes plus the long english names.
func ParsePosition(value string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "GK", "GOALKEEPER":
		return PositionGoalkeeper, true
	case "DEF", "DEFENDER":
		return PositionDefender, true
	case "MID", "MIDFIELDER":
		return PositionMidfielder, true
	case "FWD", "FORWARD":
		return PositionForward, true
	default:
		return "", false
	}
}

// Athlete is a member of a racha roster.
type Athlete struct {
	ID                string
	GroupID           string
	Name              string
	Nickname          string
	PrimaryPosition   Position
	SecondaryPosition Position
	IsMember          bool
}

// ResolvedPosition returns the primary position, falling back to the secondary one.
func (a Athlete) ResolvedPosition() Position {
	if a.PrimaryPosition != "" {
		return a.PrimaryPosition
	}
	return a.SecondaryPosition
}

// DisplayName prefers the nickname the group knows the athlete by.
func (a Athlete) DisplayName() string {
	if nick := strings.TrimSpace(a.Nickname); nick != "" {
		return nick
	}
	return a.Name
}

func (a Athlete) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("athlete id is required")
	}
	if a.GroupID == "" {
		return fmt.Errorf("athlete group id is required")
	}
	if a.Name == "" {
		return fmt.Errorf("athlete name is required")
	}
	if a.PrimaryPosition != "" {
		if _, ok := AllPositions[a.PrimaryPosition]; !ok {
			return fmt.Errorf("invalid athlete primary position: %s", a.PrimaryPosition)
		}
	}
	if a.SecondaryPosition != "" {
		if _, ok := AllPositions[a.SecondaryPosition]; !ok {
			return fmt.Errorf("invalid athlete secondary position: %s", a.SecondaryPosition)
		}
	}

	return nil
}
