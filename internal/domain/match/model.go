package match

import (
	"fmt"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
)

// Outcome is the result of a match from one team's point of view.
type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeDraw
	OutcomeWin
)

// Match represents one confrontation between two teams of a racha.
// Scores are only meaningful when Finalized is true.
type Match struct {
	ID        string
	GroupID   string
	PlayedAt  time.Time
	Location  string
	Finalized bool
	TeamAID   string
	TeamBID   string
	ScoreA    int
	ScoreB    int
	Presences []Presence
}

// Presence is one athlete's participation in a match.
type Presence struct {
	AthleteID   string
	TeamID      string
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	Starter     bool
	// Position is the role played in this match. Empty means the roster position applies.
	Position athlete.Position
}

// HasTeam reports whether teamID is one of the two sides of the match.
func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == m.TeamAID || teamID == m.TeamBID)
}

// OutcomeFor returns the outcome for teamID. The second value is false when the
// team did not take part in the match.
func (m Match) OutcomeFor(teamID string) (Outcome, bool) {
	var own, other int
	switch teamID {
	case "":
		return OutcomeLoss, false
	case m.TeamAID:
		own, other = m.ScoreA, m.ScoreB
	case m.TeamBID:
		own, other = m.ScoreB, m.ScoreA
	default:
		return OutcomeLoss, false
	}

	switch {
	case own > other:
		return OutcomeWin, true
	case own == other:
		return OutcomeDraw, true
	default:
		return OutcomeLoss, true
	}
}

// GoalsFor returns goals scored and conceded by teamID.
func (m Match) GoalsFor(teamID string) (scored, conceded int) {
	switch teamID {
	case m.TeamAID:
		return m.ScoreA, m.ScoreB
	case m.TeamBID:
		return m.ScoreB, m.ScoreA
	default:
		return 0, 0
	}
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.GroupID == "" {
		return fmt.Errorf("match group id is required")
	}
	if m.TeamAID == "" || m.TeamBID == "" {
		return fmt.Errorf("match requires two teams")
	}
	if m.TeamAID == m.TeamBID {
		return fmt.Errorf("match teams must be different")
	}
	if m.PlayedAt.IsZero() {
		return fmt.Errorf("match date is required")
	}
	if m.ScoreA < 0 || m.ScoreB < 0 {
		return fmt.Errorf("match score must not be negative")
	}

	seen := make(map[string]struct{}, len(m.Presences))
	for _, p := range m.Presences {
		if p.AthleteID == "" {
			return fmt.Errorf("presence athlete id is required")
		}
		if _, dup := seen[p.AthleteID]; dup {
			return fmt.Errorf("duplicate presence for athlete %s", p.AthleteID)
		}
		seen[p.AthleteID] = struct{}{}
		if p.Goals < 0 || p.Assists < 0 || p.YellowCards < 0 || p.RedCards < 0 {
			return fmt.Errorf("presence counters must not be negative for athlete %s", p.AthleteID)
		}
		if p.Position != "" {
			if _, ok := athlete.AllPositions[p.Position]; !ok {
				return fmt.Errorf("invalid presence position %s for athlete %s", p.Position, p.AthleteID)
			}
		}
	}

	return nil
}
