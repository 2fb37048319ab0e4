package postgres

import (
	"database/sql"
	"time"

	"github.com/sbathletics/gridiron-ingest/internal/domain/roster"
)

type rosterEntryTableModel struct {
	ID           int64          `db:"id"`
	TeamID       int64          `db:"team_id"`
	PlayerID     string         `db:"player_id"`
	SeasonID     int64          `db:"season_id"`
	Position1    sql.NullString `db:"position1"`
	Position2    sql.NullString `db:"position2"`
	Position3    sql.NullString `db:"position3"`
	JerseyNumber sql.NullString `db:"jersey_number"`
	StartDate    time.Time      `db:"start_date"`
	EndDate      time.Time      `db:"end_date"`
}

type rosterEntryInsertModel struct {
	TeamID       int64     `db:"team_id"`
	PlayerID     string    `db:"player_id"`
	SeasonID     int64     `db:"season_id"`
	Position1    *string   `db:"position1"`
	Position2    *string   `db:"position2"`
	Position3    *string   `db:"position3"`
	JerseyNumber *string   `db:"jersey_number"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
}

func (m rosterEntryTableModel) toDomain() roster.Entry {
	return roster.Entry{
		ID:           m.ID,
		TeamID:       m.TeamID,
		PlayerID:     m.PlayerID,
		SeasonID:     m.SeasonID,
		Position1:    nullStringToStringPtr(m.Position1),
		Position2:    nullStringToStringPtr(m.Position2),
		Position3:    nullStringToStringPtr(m.Position3),
		JerseyNumber: nullStringToStringPtr(m.JerseyNumber),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
	}
}

func nullStringToStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
