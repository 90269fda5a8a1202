package ranking

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidRankingQuery = errors.New("invalid ranking query")
	ErrDataAnomaly         = errors.New("data anomaly")
)

// AnomalyReason is a closed set of non-fatal data problems found while scoring.
type AnomalyReason string

const (
	ReasonTeamNotInMatch    AnomalyReason = "presence_team_not_in_match"
	ReasonDuplicatePresence AnomalyReason = "duplicate_presence"
	ReasonSameTeamTwice     AnomalyReason = "match_team_repeated"
)

// Anomaly is a skipped input row. It never aborts a computation.
type Anomaly struct {
	MatchID   string
	AthleteID string
	TeamID    string
	Reason    AnomalyReason
}

// Err wraps ErrDataAnomaly with the anomaly coordinates.
func (a Anomaly) Err() error {
	return errors.Wrapf(ErrDataAnomaly, "match %s athlete %s team %s: %s", a.MatchID, a.AthleteID, a.TeamID, a.Reason)
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", a.MatchID, a.AthleteID, a.TeamID, a.Reason)
}

func lessAnomaly(a, b Anomaly) bool {
	if a.MatchID != b.MatchID {
		return a.MatchID < b.MatchID
	}
	if a.AthleteID != b.AthleteID {
		return a.AthleteID < b.AthleteID
	}
	if a.TeamID != b.TeamID {
		return a.TeamID < b.TeamID
	}
	return a.Reason < b.Reason
}
