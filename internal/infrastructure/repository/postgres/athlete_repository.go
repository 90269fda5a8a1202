package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

type AthleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

// ListByGroup returns the roster ordered by roster_order, the canonical
// tie-break order of the rankings.
func (r *AthleteRepository) ListByGroup(ctx context.Context, groupID string) ([]athlete.Athlete, error) {
	builder, err := selectModel("athletes", athleteTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := builder.
		Where(qb.Eq("group_public_id", groupID), qb.IsNull("deleted_at")).
		OrderBy("roster_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select athletes by group query: %w", err)
	}

	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select athletes by group: %w", err)
	}

	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, athlete.Athlete{
			ID:                row.PublicID,
			GroupID:           row.GroupPublicID,
			Name:              row.Name,
			Nickname:          row.Nickname.String,
			PrimaryPosition:   athlete.Position(row.PrimaryPosition.String),
			SecondaryPosition: athlete.Position(row.SecondaryPosition.String),
			IsMember:          row.IsMember,
		})
	}
	return out, nil
}
