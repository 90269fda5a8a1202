// Package period turns logical period selectors into half-open UTC ranges
// bucketed in the league's fixed timezone.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Location is the league timezone. The league clock never observes DST.
var Location = time.FixedZone("America/Fortaleza", -3*60*60)

var ErrInvalidPeriod = errors.New("invalid period")

type Kind string

const (
	KindAll     Kind = "all"
	KindYear    Kind = "year"
	KindQuarter Kind = "quarter"
	KindMonth   Kind = "month"
	KindCustom  Kind = "custom"
)

// QuartersPerYear is three: each quarter is a block of four months.
const (
	QuartersPerYear  = 3
	monthsPerQuarter = 4
)

// Selector is a tagged union. Only the fields relevant to Kind are read.
type Selector struct {
	Kind    Kind
	Year    int
	Quarter int
	Month   int
	Start   string
	End     string
}

func All() Selector { return Selector{Kind: KindAll} }

func Year(y int) Selector { return Selector{Kind: KindYear, Year: y} }

func Quarter(y, q int) Selector { return Selector{Kind: KindQuarter, Year: y, Quarter: q} }

func Month(y, m int) Selector { return Selector{Kind: KindMonth, Year: y, Month: m} }

// Custom takes RFC3339 instants. They are parsed on Resolve.
func Custom(start, end string) Selector { return Selector{Kind: KindCustom, Start: start, End: end} }

// Key is a stable textual form used in cache keys and logs.
func (s Selector) Key() string {
	switch s.Kind {
	case KindAll:
		return "all"
	case KindYear:
		return fmt.Sprintf("year:%d", s.Year)
	case KindQuarter:
		return fmt.Sprintf("quarter:%d-%d", s.Year, s.Quarter)
	case KindMonth:
		return fmt.Sprintf("month:%d-%02d", s.Year, s.Month)
	case KindCustom:
		return "custom:" + s.Start + "/" + s.End
	default:
		return "unknown:" + string(s.Kind)
	}
}

func (s Selector) String() string { return s.Key() }

// Range is a half-open [Start, End) interval in UTC.
type Range struct {
	Start     time.Time
	End       time.Time
	Unbounded bool
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.Unbounded {
		return true
	}
	return !t.Before(r.Start) && t.Before(r.End)
}

// Resolve converts a selector into a UTC range. now is only consulted by
// selectors whose year is left as zero, which means the current local year.
func Resolve(sel Selector, now time.Time) (Range, error) {
	year := sel.Year
	if year == 0 && sel.Kind != KindAll && sel.Kind != KindCustom {
		year = now.In(Location).Year()
	}
	if sel.Kind == KindYear || sel.Kind == KindQuarter || sel.Kind == KindMonth {
		if year < 1 || year > 9999 {
			return Range{}, errors.Wrapf(ErrInvalidPeriod, "year %d out of range", year)
		}
	}

	switch sel.Kind {
	case KindAll:
		return Range{Unbounded: true}, nil
	case KindYear:
		return localRange(year, time.January, 12), nil
	case KindQuarter:
		if sel.Quarter < 1 || sel.Quarter > QuartersPerYear {
			return Range{}, errors.Wrapf(ErrInvalidPeriod, "quarter %d must be between 1 and %d", sel.Quarter, QuartersPerYear)
		}
		first := time.Month((sel.Quarter-1)*monthsPerQuarter + 1)
		return localRange(year, first, monthsPerQuarter), nil
	case KindMonth:
		if sel.Month < 1 || sel.Month > 12 {
			return Range{}, errors.Wrapf(ErrInvalidPeriod, "month %d must be between 1 and 12", sel.Month)
		}
		return localRange(year, time.Month(sel.Month), 1), nil
	case KindCustom:
		return resolveCustom(sel.Start, sel.End)
	default:
		return Range{}, errors.Wrapf(ErrInvalidPeriod, "unknown period kind %q", sel.Kind)
	}
}

func localRange(year int, first time.Month, months int) Range {
	start := time.Date(year, first, 1, 0, 0, 0, 0, Location)
	// time.Date normalises month overflow into the following year.
	end := time.Date(year, first+time.Month(months), 1, 0, 0, 0, 0, Location)
	return Range{Start: start.UTC(), End: end.UTC()}
}

func resolveCustom(startRaw, endRaw string) (Range, error) {
	start, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(startRaw))
	if err != nil {
		return Range{}, errors.Wrapf(ErrInvalidPeriod, "malformed start %q", startRaw)
	}
	end, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(endRaw))
	if err != nil {
		return Range{}, errors.Wrapf(ErrInvalidPeriod, "malformed end %q", endRaw)
	}
	if !end.After(start) {
		return Range{}, errors.Wrapf(ErrInvalidPeriod, "end %s must be after start %s", endRaw, startRaw)
	}
	return Range{Start: start.UTC(), End: end.UTC()}, nil
}

// Previous returns the selector immediately preceding sel, used for trend
// comparison. All has no predecessor and reports false. A custom window maps to
// the window of equal duration ending at its start.
func Previous(sel Selector, now time.Time) (Selector, bool, error) {
	year := sel.Year
	if year == 0 {
		year = now.In(Location).Year()
	}

	switch sel.Kind {
	case KindAll:
		return Selector{}, false, nil
	case KindYear:
		if _, err := Resolve(sel, now); err != nil {
			return Selector{}, false, err
		}
		return Year(year - 1), year > 1, nil
	case KindQuarter:
		if _, err := Resolve(sel, now); err != nil {
			return Selector{}, false, err
		}
		if sel.Quarter == 1 {
			return Quarter(year-1, QuartersPerYear), year > 1, nil
		}
		return Quarter(year, sel.Quarter-1), true, nil
	case KindMonth:
		if _, err := Resolve(sel, now); err != nil {
			return Selector{}, false, err
		}
		if sel.Month == 1 {
			return Month(year-1, 12), year > 1, nil
		}
		return Month(year, sel.Month-1), true, nil
	case KindCustom:
		r, err := Resolve(sel, now)
		if err != nil {
			return Selector{}, false, err
		}
		width := r.End.Sub(r.Start)
		prevStart := r.Start.Add(-width)
		return Custom(prevStart.Format(time.RFC3339Nano), r.Start.Format(time.RFC3339Nano)), true, nil
	default:
		return Selector{}, false, errors.Wrapf(ErrInvalidPeriod, "unknown period kind %q", sel.Kind)
	}
}

// QuarterOf returns the four-month quarter containing month m.
func QuarterOf(m time.Month) int {
	return (int(m)-1)/monthsPerQuarter + 1
}

// Query is the loose, string-typed shape a period arrives in from transport
// layers. Missing calendar fields default to the current local ones.
type Query struct {
	Kind    string
	Year    string
	Quarter string
	Month   string
	Start   string
	End     string
}

// Parse builds a Selector from a Query. An empty kind means all-time.
func Parse(q Query, now time.Time) (Selector, error) {
	local := now.In(Location)

	year, err := intOr(q.Year, local.Year(), "year")
	if err != nil {
		return Selector{}, err
	}

	switch Kind(strings.ToLower(strings.TrimSpace(q.Kind))) {
	case "", KindAll:
		return All(), nil
	case KindYear:
		return Year(year), nil
	case KindQuarter:
		quarter, err := intOr(q.Quarter, QuarterOf(local.Month()), "quarter")
		if err != nil {
			return Selector{}, err
		}
		return Quarter(year, quarter), nil
	case KindMonth:
		month, err := intOr(q.Month, int(local.Month()), "month")
		if err != nil {
			return Selector{}, err
		}
		return Month(year, month), nil
	case KindCustom:
		if strings.TrimSpace(q.Start) == "" || strings.TrimSpace(q.End) == "" {
			return Selector{}, errors.Wrap(ErrInvalidPeriod, "custom period requires start and end")
		}
		return Custom(q.Start, q.End), nil
	default:
		return Selector{}, errors.Wrapf(ErrInvalidPeriod, "unknown period kind %q", q.Kind)
	}
}

func intOr(raw string, fallback int, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidPeriod, "%s must be numeric, got %q", field, raw)
	}
	return v, nil
}
