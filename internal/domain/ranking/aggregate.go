package ranking

import (
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/racha-league/internal/domain/match"
	"github.com/riskibarqy/racha-league/internal/domain/period"
)

type AthleteTotals struct {
	AthleteID   string
	Points      int
	Goals       int
	Assists     int
	Matches     int
	Wins        int
	Draws       int
	Losses      int
	YellowCards int
	RedCards    int
}

// WinRate is wins over matches played, zero when nothing was played.
func (t AthleteTotals) WinRate() float64 {
	if t.Matches == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Matches)
}

func (t *AthleteTotals) add(o AthleteTotals) {
	t.Points += o.Points
	t.Goals += o.Goals
	t.Assists += o.Assists
	t.Matches += o.Matches
	t.Wins += o.Wins
	t.Draws += o.Draws
	t.Losses += o.Losses
	t.YellowCards += o.YellowCards
	t.RedCards += o.RedCards
}

type TeamTotals struct {
	TeamID       string
	Points       int
	Matches      int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

func (t TeamTotals) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

func (t *TeamTotals) add(o TeamTotals) {
	t.Points += o.Points
	t.Matches += o.Matches
	t.Wins += o.Wins
	t.Draws += o.Draws
	t.Losses += o.Losses
	t.GoalsFor += o.GoalsFor
	t.GoalsAgainst += o.GoalsAgainst
}

// Totals is the cumulative fold of a set of matches. Every operation on it is
// a plain sum, so partial Totals can be merged in any order. The zero value is
// an empty fold ready to use.
type Totals struct {
	Athletes  map[string]AthleteTotals
	Teams     map[string]TeamTotals
	Anomalies []Anomaly
}

func NewTotals() Totals {
	return Totals{
		Athletes: make(map[string]AthleteTotals),
		Teams:    make(map[string]TeamTotals),
	}
}

func (t *Totals) init() {
	if t.Athletes == nil {
		t.Athletes = make(map[string]AthleteTotals)
	}
	if t.Teams == nil {
		t.Teams = make(map[string]TeamTotals)
	}
}

// Add folds one match delta into the totals.
func (t *Totals) Add(delta MatchDelta) {
	t.init()
	for _, d := range delta.Athletes {
		item := t.Athletes[d.AthleteID]
		item.AthleteID = d.AthleteID
		item.add(AthleteTotals{
			Points:      d.Points,
			Goals:       d.Goals,
			Assists:     d.Assists,
			Matches:     1,
			Wins:        boolToInt(d.Outcome == match.OutcomeWin),
			Draws:       boolToInt(d.Outcome == match.OutcomeDraw),
			Losses:      boolToInt(d.Outcome == match.OutcomeLoss),
			YellowCards: d.YellowCards,
			RedCards:    d.RedCards,
		})
		t.Athletes[d.AthleteID] = item
	}

	for _, d := range delta.Teams {
		item := t.Teams[d.TeamID]
		item.TeamID = d.TeamID
		item.add(TeamTotals{
			Points:       d.Points,
			Matches:      1,
			Wins:         boolToInt(d.Outcome == match.OutcomeWin),
			Draws:        boolToInt(d.Outcome == match.OutcomeDraw),
			Losses:       boolToInt(d.Outcome == match.OutcomeLoss),
			GoalsFor:     d.GoalsFor,
			GoalsAgainst: d.GoalsAgainst,
		})
		t.Teams[d.TeamID] = item
	}

	if len(delta.Anomalies) > 0 {
		t.Anomalies = append(t.Anomalies, delta.Anomalies...)
		sortAnomalies(t.Anomalies)
	}
}

// Merge adds other into t.
func (t *Totals) Merge(other Totals) {
	t.init()
	for id, o := range other.Athletes {
		item := t.Athletes[id]
		item.AthleteID = id
		item.add(o)
		t.Athletes[id] = item
	}
	for id, o := range other.Teams {
		item := t.Teams[id]
		item.TeamID = id
		item.add(o)
		t.Teams[id] = item
	}
	if len(other.Anomalies) > 0 {
		t.Anomalies = append(t.Anomalies, other.Anomalies...)
		sortAnomalies(t.Anomalies)
	}
}

// Aggregate folds every finalized match played inside r.
func Aggregate(r period.Range, matches []match.Match) Totals {
	totals := NewTotals()
	for _, m := range matches {
		if !m.Finalized || !r.Contains(m.PlayedAt) {
			continue
		}
		totals.Add(ScoreMatch(m))
	}
	return totals
}

// AggregateSharded splits matches into contiguous shards, folds them
// concurrently and merges the partial totals. The result equals Aggregate.
func AggregateSharded(r period.Range, matches []match.Match, shards int) Totals {
	if shards <= 1 || len(matches) < 2*shards {
		return Aggregate(r, matches)
	}

	size := (len(matches) + shards - 1) / shards
	p := pool.NewWithResults[Totals]().WithMaxGoroutines(shards)
	for start := 0; start < len(matches); start += size {
		end := min(start+size, len(matches))
		chunk := matches[start:end]
		p.Go(func() Totals {
			return Aggregate(r, chunk)
		})
	}

	totals := NewTotals()
	for _, partial := range p.Wait() {
		totals.Merge(partial)
	}
	return totals
}

func sortAnomalies(items []Anomaly) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessAnomaly(items[i], items[j])
	})
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
