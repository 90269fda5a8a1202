package period

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const dayLayout = "2006-01-02"

// Day is a calendar date in the league timezone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay parses YYYY-MM-DD.
func ParseDay(value string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, strings.TrimSpace(value), Location)
	if err != nil {
		return Day{}, errors.Wrapf(ErrInvalidPeriod, "malformed date %q", value)
	}
	return DayOf(t), nil
}

// DayOf returns the local calendar date of instant t.
func DayOf(t time.Time) Day {
	local := t.In(Location)
	return Day{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// Range returns the local day as a half-open UTC range.
func (d Day) Range() Range {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Location)
	return Range{Start: start.UTC(), End: start.AddDate(0, 0, 1).UTC()}
}

func (d Day) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Location).Format(dayLayout)
}
