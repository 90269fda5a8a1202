package ranking

import "github.com/riskibarqy/racha-league/internal/domain/match"

// League points per outcome, for athletes and teams alike.
const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

func PointsFor(outcome match.Outcome) int {
	switch outcome {
	case match.OutcomeWin:
		return PointsWin
	case match.OutcomeDraw:
		return PointsDraw
	default:
		return PointsLoss
	}
}

type AthleteDelta struct {
	AthleteID   string
	TeamID      string
	Outcome     match.Outcome
	Points      int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

type TeamDelta struct {
	TeamID       string
	Outcome      match.Outcome
	Points       int
	GoalsFor     int
	GoalsAgainst int
}

// MatchDelta is everything one match contributes to the standings.
type MatchDelta struct {
	MatchID   string
	Athletes  []AthleteDelta
	Teams     []TeamDelta
	Anomalies []Anomaly
}

// ScoreMatch computes the point deltas of a finalized match. Goals, assists
// and cards are carried through but never change points. Presences whose team
// is not one of the two sides are reported as anomalies and skipped.
func ScoreMatch(m match.Match) MatchDelta {
	delta := MatchDelta{MatchID: m.ID}

	if m.TeamAID == m.TeamBID {
		delta.Anomalies = append(delta.Anomalies, Anomaly{MatchID: m.ID, TeamID: m.TeamAID, Reason: ReasonSameTeamTwice})
		return delta
	}

	for _, teamID := range []string{m.TeamAID, m.TeamBID} {
		outcome, _ := m.OutcomeFor(teamID)
		scored, conceded := m.GoalsFor(teamID)
		delta.Teams = append(delta.Teams, TeamDelta{
			TeamID:       teamID,
			Outcome:      outcome,
			Points:       PointsFor(outcome),
			GoalsFor:     scored,
			GoalsAgainst: conceded,
		})
	}

	seen := make(map[string]struct{}, len(m.Presences))
	delta.Athletes = make([]AthleteDelta, 0, len(m.Presences))
	for _, p := range m.Presences {
		if _, dup := seen[p.AthleteID]; dup {
			delta.Anomalies = append(delta.Anomalies, Anomaly{MatchID: m.ID, AthleteID: p.AthleteID, TeamID: p.TeamID, Reason: ReasonDuplicatePresence})
			continue
		}
		outcome, ok := m.OutcomeFor(p.TeamID)
		if !ok {
			delta.Anomalies = append(delta.Anomalies, Anomaly{MatchID: m.ID, AthleteID: p.AthleteID, TeamID: p.TeamID, Reason: ReasonTeamNotInMatch})
			continue
		}
		seen[p.AthleteID] = struct{}{}

		delta.Athletes = append(delta.Athletes, AthleteDelta{
			AthleteID:   p.AthleteID,
			TeamID:      p.TeamID,
			Outcome:     outcome,
			Points:      PointsFor(outcome),
			Goals:       p.Goals,
			Assists:     p.Assists,
			YellowCards: p.YellowCards,
			RedCards:    p.RedCards,
		})
	}

	return delta
}
