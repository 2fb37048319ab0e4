package game

import "time"

// Game is identified naturally by (season, date, home, away). Schedule
// re-imports may touch week number and location but never scores.
type Game struct {
	ID         int64
	SeasonID   int64
	Date       time.Time
	HomeTeamID int64
	AwayTeamID int64
	WeekNumber *int
	Location   *string
	HomeScore  int
	AwayScore  int
}
