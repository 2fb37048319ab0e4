package postgres

import (
	"database/sql"
	"time"

	"github.com/sbathletics/gridiron-ingest/internal/domain/game"
)

type gameTableModel struct {
	ID         int64          `db:"id"`
	SeasonID   int64          `db:"season_id"`
	Date       time.Time      `db:"date"`
	HomeTeamID int64          `db:"home_team_id"`
	AwayTeamID int64          `db:"away_team_id"`
	WeekNumber sql.NullInt64  `db:"week_number"`
	Location   sql.NullString `db:"location"`
	HomeScore  int            `db:"home_score"`
	AwayScore  int            `db:"away_score"`
}

type gameInsertModel struct {
	SeasonID   int64     `db:"season_id"`
	Date       time.Time `db:"date"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	WeekNumber *int      `db:"week_number"`
	Location   *string   `db:"location"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:         m.ID,
		SeasonID:   m.SeasonID,
		Date:       m.Date,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		WeekNumber: nullInt64ToIntPtr(m.WeekNumber),
		Location:   nullStringToStringPtr(m.Location),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
	}
}
