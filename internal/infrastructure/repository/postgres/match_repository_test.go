package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/racha-league/internal/domain/match"
)

func TestMatchUpsertQuery_KeepsMatchInsideItsGroup(t *testing.T) {
	query, args, err := matchUpsertQuery(match.Match{
		ID:        "mt_1",
		GroupID:   "racha-quinta-meireles",
		PlayedAt:  time.Date(2026, 2, 5, 22, 0, 0, 0, time.UTC),
		Finalized: true,
		TeamAID:   "qui-azul",
		TeamBID:   "qui-vermelho",
		ScoreA:    3,
		ScoreB:    1,
	})
	if err != nil {
		t.Fatalf("build upsert: %v", err)
	}

	for _, part := range []string{
		"ON CONFLICT (public_id) DO UPDATE SET",
		"WHERE matches.group_public_id = EXCLUDED.group_public_id",
		"RETURNING (xmax = 0) AS inserted",
	} {
		if !strings.Contains(query, part) {
			t.Fatalf("query lacks %q:\n%s", part, query)
		}
	}
	if strings.Contains(query, "group_public_id = EXCLUDED.group_public_id,") {
		t.Fatalf("group must never be overwritten on conflict:\n%s", query)
	}

	found := false
	for _, arg := range args {
		if arg == "racha-quinta-meireles" {
			found = true
		}
	}
	if !found {
		t.Fatalf("group id not bound: %+v", args)
	}
}
