package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/racha-league/internal/domain/team"
	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByGroup(ctx context.Context, groupID string) ([]team.Team, error) {
	builder, err := selectModel("teams", teamTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := builder.
		Where(qb.Eq("group_public_id", groupID), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by group query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by group: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, groupID, teamID string) (team.Team, bool, error) {
	builder, err := selectModel("teams", teamTableModel{})
	if err != nil {
		return team.Team{}, false, err
	}
	query, args, err := builder.
		Where(qb.Eq("group_public_id", groupID), qb.Eq("public_id", teamID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}
	return teamFromRow(row), true, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:      row.PublicID,
		GroupID: row.GroupPublicID,
		Name:    row.Name,
		Color:   row.Color.String,
		LogoURL: row.LogoURL.String,
	}
}
