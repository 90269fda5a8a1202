package postgres

import "database/sql"

type athleteTableModel struct {
	PublicID          string         `db:"public_id"`
	GroupPublicID     string         `db:"group_public_id"`
	Name              string         `db:"name"`
	Nickname          sql.NullString `db:"nickname"`
	PrimaryPosition   sql.NullString `db:"primary_position"`
	SecondaryPosition sql.NullString `db:"secondary_position"`
	IsMember          bool           `db:"is_member"`
	RosterOrder       int            `db:"roster_order"`
}
