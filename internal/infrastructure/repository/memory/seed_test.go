package memory

import (
	"testing"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/group"
	"github.com/riskibarqy/racha-league/internal/domain/team"
)

func TestSeedDataIsConsistent(t *testing.T) {
	t.Parallel()

	groups := make(map[string]group.Group)
	for _, g := range SeedGroups() {
		if err := g.Validate(); err != nil {
			t.Fatalf("invalid seed group %s: %v", g.ID, err)
		}
		groups[g.ID] = g
	}

	teams := make(map[string]team.Team)
	for _, item := range SeedTeams() {
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid seed team %s: %v", item.ID, err)
		}
		if _, ok := groups[item.GroupID]; !ok {
			t.Fatalf("team %s references unknown group %s", item.ID, item.GroupID)
		}
		teams[item.ID] = item
	}

	roster := make(map[string]athlete.Athlete)
	for _, a := range SeedAthletes() {
		if err := a.Validate(); err != nil {
			t.Fatalf("invalid seed athlete %s: %v", a.ID, err)
		}
		roster[a.ID] = a
	}

	for _, m := range SeedMatches() {
		if err := m.Validate(); err != nil {
			t.Fatalf("invalid seed match %s: %v", m.ID, err)
		}
		if teams[m.TeamAID].GroupID != m.GroupID || teams[m.TeamBID].GroupID != m.GroupID {
			t.Fatalf("match %s uses teams outside its group", m.ID)
		}
		goals := map[string]int{}
		for _, p := range m.Presences {
			a, ok := roster[p.AthleteID]
			if !ok || a.GroupID != m.GroupID {
				t.Fatalf("match %s presence %s is not on the group roster", m.ID, p.AthleteID)
			}
			if !m.HasTeam(p.TeamID) {
				t.Fatalf("match %s presence %s plays for team %s outside the match", m.ID, p.AthleteID, p.TeamID)
			}
			goals[p.TeamID] += p.Goals
		}
		if m.Finalized && (goals[m.TeamAID] != m.ScoreA || goals[m.TeamBID] != m.ScoreB) {
			t.Fatalf("match %s goals %v do not add up to %d-%d", m.ID, goals, m.ScoreA, m.ScoreB)
		}
	}
}
