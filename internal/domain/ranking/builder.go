package ranking

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
)

type Metric string

const (
	MetricPoints  Metric = "points"
	MetricGoals   Metric = "goals"
	MetricAssists Metric = "assists"
)

// ParseMetric defaults to points when value is empty.
func ParseMetric(value string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(value))) {
	case "", MetricPoints:
		return MetricPoints, nil
	case MetricGoals:
		return MetricGoals, nil
	case MetricAssists:
		return MetricAssists, nil
	default:
		return "", errors.Wrapf(ErrInvalidRankingQuery, "unknown metric %q", value)
	}
}

// ParsePositionFilter returns an empty position when value is empty.
func ParsePositionFilter(value string) (athlete.Position, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	pos, ok := athlete.ParsePosition(value)
	if !ok {
		return "", errors.Wrapf(ErrInvalidRankingQuery, "unknown position %q", value)
	}
	return pos, nil
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
	TrendNone   Trend = "none"
)

func trendOf(current int, previous int, found bool) Trend {
	switch {
	case !found:
		return TrendNone
	case current < previous:
		return TrendUp
	case current > previous:
		return TrendDown
	default:
		return TrendStable
	}
}

// Query selects what an athlete ranking is ordered by. Limit zero means no limit.
type Query struct {
	Metric   Metric
	Position athlete.Position
	Limit    int
}

func (q Query) Validate() error {
	switch q.Metric {
	case MetricPoints, MetricGoals, MetricAssists:
	default:
		return errors.Wrapf(ErrInvalidRankingQuery, "unknown metric %q", q.Metric)
	}
	if q.Position != "" {
		if _, ok := athlete.AllPositions[q.Position]; !ok {
			return errors.Wrapf(ErrInvalidRankingQuery, "unknown position %q", q.Position)
		}
	}
	if q.Limit < 0 {
		return errors.Wrapf(ErrInvalidRankingQuery, "limit must not be negative, got %d", q.Limit)
	}
	return nil
}

type AthleteEntry struct {
	Rank        int
	AthleteID   string
	DisplayName string
	Nickname    string
	Position    athlete.Position
	IsMember    bool
	Points      int
	Goals       int
	Assists     int
	Matches     int
	Wins        int
	Draws       int
	Losses      int
	WinRate     float64
	Trend       Trend
}

type athleteCandidate struct {
	totals    AthleteTotals
	profile   athlete.Athlete
	canonical int
}

// BuildAthleteRanking orders every athlete with totals by q.Metric and returns
// dense ranks 1..N. Ties on the metric fall through points, goals, assists,
// fewer matches played and finally roster order. Athletes missing from the
// roster sort after roster athletes by id and never match a position filter.
// When previous is non-nil each entry carries its trend against it.
func BuildAthleteRanking(totals Totals, roster []athlete.Athlete, q Query, previous *Totals) ([]AthleteEntry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	current := rankAthletes(totals, roster, q)

	var previousRanks map[string]int
	if previous != nil {
		prev := rankAthletes(*previous, roster, q)
		previousRanks = make(map[string]int, len(prev))
		for i, c := range prev {
			previousRanks[c.totals.AthleteID] = i + 1
		}
	}

	out := make([]AthleteEntry, 0, len(current))
	for i, c := range current {
		trend := TrendNone
		if previousRanks != nil {
			prevRank, ok := previousRanks[c.totals.AthleteID]
			trend = trendOf(i+1, prevRank, ok)
		}

		name := c.profile.DisplayName()
		if name == "" {
			name = c.totals.AthleteID
		}
		out = append(out, AthleteEntry{
			Rank:        i + 1,
			AthleteID:   c.totals.AthleteID,
			DisplayName: name,
			Nickname:    c.profile.Nickname,
			Position:    c.profile.ResolvedPosition(),
			IsMember:    c.profile.IsMember,
			Points:      c.totals.Points,
			Goals:       c.totals.Goals,
			Assists:     c.totals.Assists,
			Matches:     c.totals.Matches,
			Wins:        c.totals.Wins,
			Draws:       c.totals.Draws,
			Losses:      c.totals.Losses,
			WinRate:     c.totals.WinRate(),
			Trend:       trend,
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func rankAthletes(totals Totals, roster []athlete.Athlete, q Query) []athleteCandidate {
	index := make(map[string]int, len(roster))
	for i, a := range roster {
		if _, ok := index[a.ID]; !ok {
			index[a.ID] = i
		}
	}

	candidates := make([]athleteCandidate, 0, len(totals.Athletes))
	for id, t := range totals.Athletes {
		c := athleteCandidate{totals: t, canonical: len(roster)}
		if i, ok := index[id]; ok {
			c.profile = roster[i]
			c.canonical = i
		}
		if q.Position != "" && c.profile.ResolvedPosition() != q.Position {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return compareAthletes(candidates[i], candidates[j], q.Metric) < 0
	})
	return candidates
}

// compareAthletes returns a negative number when a ranks above b.
func compareAthletes(a, b athleteCandidate, metric Metric) int {
	if d := metricValue(b.totals, metric) - metricValue(a.totals, metric); d != 0 {
		return d
	}
	if metric != MetricPoints {
		if d := b.totals.Points - a.totals.Points; d != 0 {
			return d
		}
	}
	if d := b.totals.Goals - a.totals.Goals; d != 0 {
		return d
	}
	if d := b.totals.Assists - a.totals.Assists; d != 0 {
		return d
	}
	if d := a.totals.Matches - b.totals.Matches; d != 0 {
		return d
	}
	if d := a.canonical - b.canonical; d != 0 {
		return d
	}
	return strings.Compare(a.totals.AthleteID, b.totals.AthleteID)
}

func metricValue(t AthleteTotals, metric Metric) int {
	switch metric {
	case MetricGoals:
		return t.Goals
	case MetricAssists:
		return t.Assists
	default:
		return t.Points
	}
}
