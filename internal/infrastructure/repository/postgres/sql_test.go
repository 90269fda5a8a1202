package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get group: %w", sql.ErrNoRows)) {
			t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation groups does not exist")) {
			t.Fatalf("expected unrelated error to be ignored")
		}
	})
}

func TestNullString(t *testing.T) {
	if got := nullString("  "); got.Valid {
		t.Fatalf("expected blank string to be null, got %+v", got)
	}
	if got := nullString(" MID "); !got.Valid || got.String != "MID" {
		t.Fatalf("unexpected null string: %+v", got)
	}
}

func TestAnyStrings(t *testing.T) {
	got := anyStrings([]string{"a", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected values: %+v", got)
	}
}
