package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}

// anyStrings adapts a string slice to the variadic form querybuilder.In takes.
func anyStrings(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

// selectModel starts a select over exactly the columns model maps, so table
// bookkeeping columns never reach sqlx's strict scanner.
func selectModel(table string, model any) (*qb.SelectBuilder, error) {
	cols, err := qb.Columns(model)
	if err != nil {
		return nil, fmt.Errorf("columns of %s model: %w", table, err)
	}
	return qb.Select(cols...).From(table), nil
}
