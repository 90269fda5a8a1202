package ranking

import (
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/match"
)

var baseTime = time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)

func presence(athleteID, teamID string, goals, assists int) match.Presence {
	return match.Presence{AthleteID: athleteID, TeamID: teamID, Goals: goals, Assists: assists, Starter: true}
}

func finalized(id string, playedAt time.Time, teamA, teamB string, scoreA, scoreB int, presences ...match.Presence) match.Match {
	return match.Match{
		ID:        id,
		GroupID:   "grp-1",
		PlayedAt:  playedAt,
		Finalized: true,
		TeamAID:   teamA,
		TeamBID:   teamB,
		ScoreA:    scoreA,
		ScoreB:    scoreB,
		Presences: presences,
	}
}
