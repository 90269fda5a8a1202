package ranking

import (
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/racha-league/internal/domain/match"
)

func TestScoreMatch_PointSumsMatchOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		item     match.Match
		expected int
	}{
		{
			name: "decisive result pays only the winners",
			item: finalized("m1", baseTime, "blue", "red", 4, 2,
				presence("a1", "blue", 2, 0), presence("a2", "blue", 1, 1), presence("a3", "blue", 1, 0),
				presence("b1", "red", 2, 0), presence("b2", "red", 0, 1)),
			expected: 3 * 3,
		},
		{
			name: "draw pays every player one point",
			item: finalized("m2", baseTime, "blue", "red", 2, 2,
				presence("a1", "blue", 2, 0), presence("a2", "blue", 0, 0),
				presence("b1", "red", 1, 0), presence("b2", "red", 1, 0), presence("b3", "red", 0, 2)),
			expected: 1 * 5,
		},
		{
			name: "away side wins",
			item: finalized("m3", baseTime, "blue", "red", 0, 1,
				presence("a1", "blue", 0, 0),
				presence("b1", "red", 1, 0), presence("b2", "red", 0, 1)),
			expected: 3 * 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			delta := ScoreMatch(tc.item)
			sum := 0
			for _, d := range delta.Athletes {
				sum += d.Points
			}
			if sum != tc.expected {
				t.Fatalf("expected athlete point sum %d, got %d", tc.expected, sum)
			}
			if len(delta.Anomalies) != 0 {
				t.Fatalf("expected no anomalies, got %+v", delta.Anomalies)
			}
		})
	}
}

func TestScoreMatch_GoalsAndCardsNeverChangePoints(t *testing.T) {
	t.Parallel()

	p := presence("a1", "blue", 5, 4)
	p.YellowCards = 1
	p.RedCards = 1
	delta := ScoreMatch(finalized("m1", baseTime, "blue", "red", 0, 3, p))

	if len(delta.Athletes) != 1 {
		t.Fatalf("expected one athlete delta, got %d", len(delta.Athletes))
	}
	got := delta.Athletes[0]
	if got.Points != 0 || got.Goals != 5 || got.Assists != 4 || got.RedCards != 1 {
		t.Fatalf("unexpected athlete delta %+v", got)
	}
	if delta.Teams[0].Points != PointsLoss || delta.Teams[1].Points != PointsWin {
		t.Fatalf("unexpected team deltas %+v", delta.Teams)
	}
}

func TestScoreMatch_SkipsAthleteOnNeitherTeam(t *testing.T) {
	t.Parallel()

	delta := ScoreMatch(finalized("m1", baseTime, "blue", "red", 1, 0,
		presence("a1", "blue", 1, 0),
		presence("ghost", "green", 3, 0),
		presence("a1", "blue", 1, 0),
	))

	if len(delta.Athletes) != 1 || delta.Athletes[0].AthleteID != "a1" {
		t.Fatalf("expected only a1 to be scored, got %+v", delta.Athletes)
	}
	if len(delta.Anomalies) != 2 {
		t.Fatalf("expected two anomalies, got %+v", delta.Anomalies)
	}
	if delta.Anomalies[0].Reason != ReasonTeamNotInMatch || delta.Anomalies[1].Reason != ReasonDuplicatePresence {
		t.Fatalf("unexpected anomaly reasons %+v", delta.Anomalies)
	}
	if !errors.Is(delta.Anomalies[0].Err(), ErrDataAnomaly) {
		t.Fatalf("anomaly error must wrap ErrDataAnomaly")
	}
}
