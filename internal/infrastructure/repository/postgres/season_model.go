package postgres

type seasonTableModel struct {
	ID   int64 `db:"id"`
	Year int   `db:"year"`
}
