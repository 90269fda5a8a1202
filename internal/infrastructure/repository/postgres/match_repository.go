package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/racha-league/internal/domain/athlete"
	"github.com/riskibarqy/racha-league/internal/domain/match"
	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByGroup(ctx context.Context, groupID string) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("group_public_id", groupID), qb.IsNull("deleted_at"))
}

// ListByGroupBetween returns matches played in [start, end).
func (r *MatchRepository) ListByGroupBetween(ctx context.Context, groupID string, start, end time.Time) ([]match.Match, error) {
	return r.list(ctx,
		qb.Eq("group_public_id", groupID),
		qb.Gte("played_at", start.UTC()),
		qb.Lt("played_at", end.UTC()),
		qb.IsNull("deleted_at"),
	)
}

func (r *MatchRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	builder, err := selectModel("matches", matchTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := builder.Where(conditions...).OrderBy("played_at", "public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	presences, err := r.presencesByMatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:        row.PublicID,
			GroupID:   row.GroupPublicID,
			PlayedAt:  row.PlayedAt.UTC(),
			Location:  row.Location.String,
			Finalized: row.Finalized,
			TeamAID:   row.TeamAPublicID,
			TeamBID:   row.TeamBPublicID,
			ScoreA:    row.ScoreA,
			ScoreB:    row.ScoreB,
			Presences: presences[row.PublicID],
		})
	}
	return out, nil
}

func (r *MatchRepository) presencesByMatch(ctx context.Context, matchIDs []string) (map[string][]match.Presence, error) {
	builder, err := selectModel("match_presences", presenceTableModel{})
	if err != nil {
		return nil, err
	}
	query, args, err := builder.
		Where(qb.In("match_public_id", anyStrings(matchIDs)...)).
		OrderBy("match_public_id", "sort_order").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select presences query: %w", err)
	}

	var rows []presenceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select presences: %w", err)
	}

	out := make(map[string][]match.Presence, len(matchIDs))
	for _, row := range rows {
		out[row.MatchPublicID] = append(out[row.MatchPublicID], match.Presence{
			AthleteID:   row.AthletePublicID,
			TeamID:      row.TeamPublicID,
			Goals:       row.Goals,
			Assists:     row.Assists,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
			Starter:     row.Starter,
			Position:    athlete.Position(row.Position.String),
		})
	}
	return out, nil
}

// matchUpsertQuery inserts or updates the match row. The update only applies
// to a row of the same group; otherwise no row comes back.
func matchUpsertQuery(item match.Match) (string, []any, error) {
	matchInsert, err := qb.InsertModels("matches", []matchTableModel{{
		PublicID:      item.ID,
		GroupPublicID: item.GroupID,
		PlayedAt:      item.PlayedAt.UTC(),
		Location:      nullString(item.Location),
		Finalized:     item.Finalized,
		TeamAPublicID: item.TeamAID,
		TeamBPublicID: item.TeamBID,
		ScoreA:        item.ScoreA,
		ScoreB:        item.ScoreB,
	}})
	if err != nil {
		return "", nil, fmt.Errorf("build upsert match: %w", err)
	}
	return matchInsert.OnConflictUpdate(
		[]string{"public_id"},
		"played_at", "location", "finalized", "team_a_public_id", "team_b_public_id", "score_a", "score_b",
	).
		UpdateIf("matches.group_public_id = EXCLUDED.group_public_id").
		Returning("(xmax = 0) AS inserted").
		ToSQL()
}

// Upsert writes the match row and replaces its presence set in one transaction.
func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert match tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := matchUpsertQuery(item)
	if err != nil {
		return false, fmt.Errorf("build upsert match query: %w", err)
	}
	var created bool
	if err := tx.GetContext(ctx, &created, query, args...); err != nil {
		if isNotFound(err) {
			return false, errors.Wrapf(match.ErrOwnedByOtherGroup, "match %s", item.ID)
		}
		return false, fmt.Errorf("upsert match %s: %w", item.ID, err)
	}

	query, args, err = qb.DeleteFrom("match_presences").Where(qb.Eq("match_public_id", item.ID)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete presences query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("delete presences of match %s: %w", item.ID, err)
	}

	if len(item.Presences) > 0 {
		rows := make([]presenceTableModel, 0, len(item.Presences))
		for i, p := range item.Presences {
			rows = append(rows, presenceTableModel{
				MatchPublicID:   item.ID,
				AthletePublicID: p.AthleteID,
				TeamPublicID:    p.TeamID,
				Goals:           p.Goals,
				Assists:         p.Assists,
				YellowCards:     p.YellowCards,
				RedCards:        p.RedCards,
				Starter:         p.Starter,
				Position:        nullString(string(p.Position)),
				SortOrder:       i,
			})
		}
		presenceInsert, err := qb.InsertModels("match_presences", rows)
		if err != nil {
			return false, fmt.Errorf("build insert presences: %w", err)
		}
		query, args, err = presenceInsert.ToSQL()
		if err != nil {
			return false, fmt.Errorf("build insert presences query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return false, fmt.Errorf("insert presences of match %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert match tx: %w", err)
	}
	return created, nil
}
