// Package highlight determines the team and athletes of the day from the
// confrontations played on one calendar date.
package highlight

import (
	"sort"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
	"github.com/riskibarqy/racha-league/internal/domain/ranking"
)

type Role string

const (
	RoleTopScorer      Role = "topScorer"
	RoleTopAssister    Role = "topAssister"
	RoleGoalkeeper     Role = "goalkeeper"
	RoleDefender       Role = "defender"
	RoleDayTopScorer   Role = "dayTopScorer"
	RoleDayTopAssister Role = "dayTopAssister"
)

// Roles lists every highlight role in display order.
var Roles = []Role{
	RoleTopScorer,
	RoleTopAssister,
	RoleGoalkeeper,
	RoleDefender,
	RoleDayTopScorer,
	RoleDayTopAssister,
}

// TeamDay is one team's summed result over the day.
type TeamDay struct {
	TeamID       string
	Points       int
	Matches      int
	GoalsFor     int
	GoalsAgainst int
}

func (t TeamDay) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// DailySet is the outcome for one date. Nil pointers mean undeterminable.
// RoleDefender is always nil: it is picked by hand by the group admin.
type DailySet struct {
	Date           period.Day
	ChampionTeamID *string
	Highlights     map[Role]*string
	Teams          []TeamDay
	Anomalies      []ranking.Anomaly
}

func emptySet(day period.Day) DailySet {
	set := DailySet{Date: day, Highlights: make(map[Role]*string, len(Roles))}
	for _, role := range Roles {
		set.Highlights[role] = nil
	}
	return set
}

type athleteDay struct {
	athleteID string
	teamID    string
	goals     int
	assists   int
	// keptGoal is set when any presence of the day resolves to Goalkeeper.
	keptGoal bool
	order    int
}

// ComputeDaily considers finalized matches whose local date is day. matches is
// read in input order, which settles the last champion tie-break: when teams
// tie on points, goal difference and goals, the first team seen wins. That is
// a known simplification, not a sporting rule.
func ComputeDaily(day period.Day, matches []match.Match, roster []athlete.Athlete) DailySet {
	set := emptySet(day)
	window := day.Range()

	positions := make(map[string]athlete.Position, len(roster))
	for _, a := range roster {
		positions[a.ID] = a.ResolvedPosition()
	}

	teams := make(map[string]*TeamDay)
	var teamOrder []string
	athletes := make(map[string]*athleteDay)
	var athleteOrder []string

	for _, m := range matches {
		if !m.Finalized || !window.Contains(m.PlayedAt) {
			continue
		}

		delta := ranking.ScoreMatch(m)
		set.Anomalies = append(set.Anomalies, delta.Anomalies...)
		for _, td := range delta.Teams {
			item, ok := teams[td.TeamID]
			if !ok {
				item = &TeamDay{TeamID: td.TeamID}
				teams[td.TeamID] = item
				teamOrder = append(teamOrder, td.TeamID)
			}
			item.Points += td.Points
			item.Matches++
			item.GoalsFor += td.GoalsFor
			item.GoalsAgainst += td.GoalsAgainst
		}

		presencePositions := make(map[string]athlete.Position, len(m.Presences))
		for _, p := range m.Presences {
			if _, ok := presencePositions[p.AthleteID]; !ok {
				presencePositions[p.AthleteID] = p.Position
			}
		}

		for _, ad := range delta.Athletes {
			key := ad.TeamID + "/" + ad.AthleteID
			item, ok := athletes[key]
			if !ok {
				item = &athleteDay{athleteID: ad.AthleteID, teamID: ad.TeamID, order: len(athleteOrder)}
				athletes[key] = item
				athleteOrder = append(athleteOrder, key)
			}
			item.goals += ad.Goals
			item.assists += ad.Assists
			pos := presencePositions[ad.AthleteID]
			if pos == "" {
				pos = positions[ad.AthleteID]
			}
			if pos == athlete.PositionGoalkeeper {
				item.keptGoal = true
			}
		}
	}

	if len(teamOrder) == 0 {
		return set
	}

	set.Teams = make([]TeamDay, 0, len(teamOrder))
	for _, id := range teamOrder {
		set.Teams = append(set.Teams, *teams[id])
	}
	// Stable sort keeps input order as the final tie-break.
	sort.SliceStable(set.Teams, func(i, j int) bool {
		a, b := set.Teams[i], set.Teams[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		return a.GoalsFor > b.GoalsFor
	})
	champion := set.Teams[0].TeamID
	set.ChampionTeamID = &champion

	all := make([]*athleteDay, 0, len(athleteOrder))
	var championSquad []*athleteDay
	for _, key := range athleteOrder {
		item := athletes[key]
		all = append(all, item)
		if item.teamID == champion {
			championSquad = append(championSquad, item)
		}
	}

	set.Highlights[RoleTopScorer] = bestBy(championSquad, byGoals)
	set.Highlights[RoleTopAssister] = bestBy(championSquad, byAssists)
	set.Highlights[RoleGoalkeeper] = uniqueGoalkeeper(championSquad)
	set.Highlights[RoleDayTopScorer] = bestBy(mergeAcrossTeams(all), byGoals)
	set.Highlights[RoleDayTopAssister] = bestBy(mergeAcrossTeams(all), byAssists)

	return set
}

type metricPair func(a *athleteDay) (primary, secondary int)

func byGoals(a *athleteDay) (int, int)   { return a.goals, a.assists }
func byAssists(a *athleteDay) (int, int) { return a.assists, a.goals }

// bestBy picks the highest primary metric, then secondary, then earliest
// appearance. Nobody qualifies with a zero primary metric.
func bestBy(items []*athleteDay, metric metricPair) *string {
	var best *athleteDay
	for _, item := range items {
		primary, secondary := metric(item)
		if primary <= 0 {
			continue
		}
		if best == nil {
			best = item
			continue
		}
		bp, bs := metric(best)
		if primary > bp || (primary == bp && secondary > bs) || (primary == bp && secondary == bs && item.order < best.order) {
			best = item
		}
	}
	if best == nil {
		return nil
	}
	id := best.athleteID
	return &id
}

// uniqueGoalkeeper returns the only athlete of squad who kept goal in any
// match of the day. Zero or several keepers leave the role empty.
func uniqueGoalkeeper(squad []*athleteDay) *string {
	var found *string
	for _, item := range squad {
		if !item.keptGoal {
			continue
		}
		if found != nil && *found != item.athleteID {
			return nil
		}
		id := item.athleteID
		found = &id
	}
	return found
}

// mergeAcrossTeams sums an athlete who appeared for more than one team on the
// same day, keeping the first appearance order.
func mergeAcrossTeams(items []*athleteDay) []*athleteDay {
	byID := make(map[string]*athleteDay, len(items))
	out := make([]*athleteDay, 0, len(items))
	for _, item := range items {
		if existing, ok := byID[item.athleteID]; ok {
			existing.goals += item.goals
			existing.assists += item.assists
			continue
		}
		merged := *item
		byID[item.athleteID] = &merged
		out = append(out, &merged)
	}
	return out
}
