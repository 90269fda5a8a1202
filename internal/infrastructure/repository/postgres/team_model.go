package postgres

import "database/sql"

type teamTableModel struct {
	PublicID      string         `db:"public_id"`
	GroupPublicID string         `db:"group_public_id"`
	Name          string         `db:"name"`
	Color         sql.NullString `db:"color"`
	LogoURL       sql.NullString `db:"logo_url"`
}
