package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/riskibarqy/racha-league/internal/platform/querybuilder"
)

// DataVersionRepository keeps group data versions in the group_data_versions
// table. It is the fallback store when redis is not configured.
type DataVersionRepository struct {
	db *sqlx.DB
}

func NewDataVersionRepository(db *sqlx.DB) *DataVersionRepository {
	return &DataVersionRepository{db: db}
}

func (r *DataVersionRepository) Current(ctx context.Context, groupID string) (int64, error) {
	query, args, err := qb.Select("version").From("group_data_versions").Where(qb.Eq("group_public_id", groupID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select data version query: %w", err)
	}

	var version int64
	if err := r.db.GetContext(ctx, &version, query, args...); err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get data version: %w", err)
	}
	return version, nil
}

func (r *DataVersionRepository) Bump(ctx context.Context, groupID string) (int64, error) {
	const bumpQuery = `
INSERT INTO group_data_versions (group_public_id, version, updated_at)
VALUES ($1, 1, NOW())
ON CONFLICT (group_public_id)
DO UPDATE SET version = group_data_versions.version + 1, updated_at = NOW()
RETURNING version`

	var version int64
	if err := r.db.GetContext(ctx, &version, bumpQuery, groupID); err != nil {
		return 0, fmt.Errorf("bump data version: %w", err)
	}
	return version, nil
}
