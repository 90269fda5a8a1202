package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/racha-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo rachas into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM groups WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count groups for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	groups := make([]groupTableModel, 0)
	for _, g := range memory.SeedGroups() {
		groups = append(groups, groupTableModel{PublicID: g.ID, Name: g.Name, City: g.City, Timezone: g.Timezone})
	}
	if err := insertSeed(ctx, tx, "groups", groups); err != nil {
		return err
	}

	teams := make([]teamTableModel, 0)
	for _, t := range memory.SeedTeams() {
		teams = append(teams, teamTableModel{
			PublicID:      t.ID,
			GroupPublicID: t.GroupID,
			Name:          t.Name,
			Color:         nullString(t.Color),
			LogoURL:       nullString(t.LogoURL),
		})
	}
	if err := insertSeed(ctx, tx, "teams", teams); err != nil {
		return err
	}

	athletes := make([]athleteTableModel, 0)
	for i, a := range memory.SeedAthletes() {
		athletes = append(athletes, athleteTableModel{
			PublicID:          a.ID,
			GroupPublicID:     a.GroupID,
			Name:              a.Name,
			Nickname:          nullString(a.Nickname),
			PrimaryPosition:   nullString(string(a.PrimaryPosition)),
			SecondaryPosition: nullString(string(a.SecondaryPosition)),
			IsMember:          a.IsMember,
			RosterOrder:       i,
		})
	}
	if err := insertSeed(ctx, tx, "athletes", athletes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	// Matches go through the repository so presences and versions follow the
	// same path as ingested results.
	matches := NewMatchRepository(db)
	versions := NewDataVersionRepository(db)
	for _, m := range memory.SeedMatches() {
		if _, err := matches.Upsert(ctx, m); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}
	for _, g := range memory.SeedGroups() {
		if _, err := versions.Bump(ctx, g.ID); err != nil {
			return fmt.Errorf("seed data version %s: %w", g.ID, err)
		}
	}

	return nil
}

func insertSeed[T any](ctx context.Context, tx *sqlx.Tx, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	builder, err := qb.InsertModels(table, rows)
	if err != nil {
		return fmt.Errorf("build seed %s: %w", table, err)
	}
	query, args, err := builder.OnConflictUpdate([]string{"public_id"}).ToSQL()
	if err != nil {
		return fmt.Errorf("build seed %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed %s: %w", table, err)
	}
	return nil
}
