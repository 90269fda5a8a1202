package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	PublicID      string         `db:"public_id"`
	GroupPublicID string         `db:"group_public_id"`
	PlayedAt      time.Time      `db:"played_at"`
	Location      sql.NullString `db:"location"`
	Finalized     bool           `db:"finalized"`
	TeamAPublicID string         `db:"team_a_public_id"`
	TeamBPublicID string         `db:"team_b_public_id"`
	ScoreA        int            `db:"score_a"`
	ScoreB        int            `db:"score_b"`
}

type presenceTableModel struct {
	MatchPublicID   string         `db:"match_public_id"`
	AthletePublicID string         `db:"athlete_public_id"`
	TeamPublicID    string         `db:"team_public_id"`
	Goals           int            `db:"goals"`
	Assists         int            `db:"assists"`
	YellowCards     int            `db:"yellow_cards"`
	RedCards        int            `db:"red_cards"`
	Starter         bool           `db:"starter"`
	Position        sql.NullString `db:"position"`
	SortOrder       int            `db:"sort_order"`
}
