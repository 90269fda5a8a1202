package postgres

type groupTableModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	Timezone string `db:"timezone"`
}
