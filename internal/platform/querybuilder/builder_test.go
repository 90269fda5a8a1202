package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	start := time.Date(2025, 1, 1, 3, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 4, 0)

	query, args, err := Select("id", "played_at").
		From("matches").
		Where(Eq("group_id", "grp-1"), Gte("played_at", start), Lt("played_at", end), Raw("finalized")).
		OrderBy("played_at", "id").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT id, played_at FROM matches WHERE group_id = $1 AND played_at >= $2 AND played_at < $3 AND finalized ORDER BY played_at, id LIMIT 50"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "grp-1" || args[1] != start || args[2] != end {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("id").From("presences").Where(In("match_id")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM presences WHERE FALSE" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder_Upsert(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("id", "score_a", "score_b").
		Values("m1", 2, 1).
		OnConflictUpdate([]string{"id"}, "score_a", "score_b").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO matches (id, score_a, score_b) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET score_a = EXCLUDED.score_a, score_b = EXCLUDED.score_b"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_GuardedUpsertReturning(t *testing.T) {
	query, _, err := InsertInto("matches").
		Columns("id", "group_id", "score_a").
		Values("m1", "g1", 2).
		OnConflictUpdate([]string{"id"}, "score_a").
		UpdateIf("matches.group_id = EXCLUDED.group_id").
		Returning("(xmax = 0) AS inserted").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO matches (id, group_id, score_a) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET score_a = EXCLUDED.score_a WHERE matches.group_id = EXCLUDED.group_id RETURNING (xmax = 0) AS inserted"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("presences").Where(Eq("match_id", "m1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM presences WHERE match_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
	if _, _, err := DeleteFrom("presences").ToSQL(); err == nil {
		t.Fatalf("expected unfiltered delete to be refused")
	}
}

type presenceRow struct {
	MatchID   string `db:"match_id"`
	AthleteID string `db:"athlete_id"`
	Goals     int    `db:"goals"`
	internal  int
	Ignored   string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []presenceRow{
		{MatchID: "m1", AthleteID: "a1", Goals: 2, internal: 9},
		{MatchID: "m1", AthleteID: "a2", Goals: 0},
	}
	b, err := InsertModels("presences", rows)
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	query, args, err := b.ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	want := "INSERT INTO presences (match_id, athlete_id, goals) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 6 || args[3] != "m1" || args[4] != "a2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	cols, err := Columns(presenceRow{})
	if err != nil || len(cols) != 3 {
		t.Fatalf("unexpected columns %v err=%v", cols, err)
	}
}

func TestSelectBuilder_IsNull(t *testing.T) {
	query, args, err := Select("public_id").From("groups").Where(Eq("public_id", "g"), IsNull("deleted_at")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT public_id FROM groups WHERE public_id = $1 AND deleted_at IS NULL" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}
