package ranking

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/team"
)

type TeamEntry struct {
	Rank           int
	TeamID         string
	Name           string
	Color          string
	LogoURL        string
	Points         int
	Matches        int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Trend          Trend
}

type teamCandidate struct {
	totals    TeamTotals
	profile   team.Team
	canonical int
}

// BuildTeamStandings orders teams by points, goal difference, goals scored,
// fewer matches played and finally the order of teams.
func BuildTeamStandings(totals Totals, teams []team.Team, limit int, previous *Totals) ([]TeamEntry, error) {
	if limit < 0 {
		return nil, errors.Wrapf(ErrInvalidRankingQuery, "limit must not be negative, got %d", limit)
	}

	current := rankTeams(totals, teams)

	var previousRanks map[string]int
	if previous != nil {
		prev := rankTeams(*previous, teams)
		previousRanks = make(map[string]int, len(prev))
		for i, c := range prev {
			previousRanks[c.totals.TeamID] = i + 1
		}
	}

	out := make([]TeamEntry, 0, len(current))
	for i, c := range current {
		trend := TrendNone
		if previousRanks != nil {
			prevRank, ok := previousRanks[c.totals.TeamID]
			trend = trendOf(i+1, prevRank, ok)
		}
		name := c.profile.Name
		if name == "" {
			name = c.totals.TeamID
		}

		out = append(out, TeamEntry{
			Rank:           i + 1,
			TeamID:         c.totals.TeamID,
			Name:           name,
			Color:          c.profile.Color,
			LogoURL:        c.profile.LogoURL,
			Points:         c.totals.Points,
			Matches:        c.totals.Matches,
			Wins:           c.totals.Wins,
			Draws:          c.totals.Draws,
			Losses:         c.totals.Losses,
			GoalsFor:       c.totals.GoalsFor,
			GoalsAgainst:   c.totals.GoalsAgainst,
			GoalDifference: c.totals.GoalDifference(),
			Trend:          trend,
		})
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func rankTeams(totals Totals, teams []team.Team) []teamCandidate {
	index := make(map[string]int, len(teams))
	for i, t := range teams {
		if _, ok := index[t.ID]; !ok {
			index[t.ID] = i
		}
	}

	candidates := make([]teamCandidate, 0, len(totals.Teams))
	for id, t := range totals.Teams {
		c := teamCandidate{totals: t, canonical: len(teams)}
		if i, ok := index[id]; ok {
			c.profile = teams[i]
			c.canonical = i
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return compareTeams(candidates[i], candidates[j]) < 0
	})
	return candidates
}

func compareTeams(a, b teamCandidate) int {
	if d := b.totals.Points - a.totals.Points; d != 0 {
		return d
	}
	if d := b.totals.GoalDifference() - a.totals.GoalDifference(); d != 0 {
		return d
	}
	if d := b.totals.GoalsFor - a.totals.GoalsFor; d != 0 {
		return d
	}
	if d := a.totals.Matches - b.totals.Matches; d != 0 {
		return d
	}
	if d := a.canonical - b.canonical; d != 0 {
		return d
	}
	return strings.Compare(a.totals.TeamID, b.totals.TeamID)
}
