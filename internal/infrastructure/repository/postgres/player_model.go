package postgres

import "database/sql"

type playerTableModel struct {
	ID             string        `db:"id"`
	FirstName      string        `db:"first_name"`
	LastName       string        `db:"last_name"`
	Height         sql.NullInt64 `db:"height"`
	Weight         sql.NullInt64 `db:"weight"`
	GraduationYear sql.NullInt64 `db:"graduation_year"`
}

type playerInsertModel struct {
	ID             string `db:"id"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	Height         *int   `db:"height"`
	Weight         *int   `db:"weight"`
	GraduationYear *int   `db:"graduation_year"`
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
