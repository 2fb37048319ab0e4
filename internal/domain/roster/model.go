package roster

import "time"

// OpenEndDate is the far-future sentinel marking the current row for a
// (team, season, player). At most one open row exists per combination.
var OpenEndDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// Entry is one temporal roster row. Re-imports update the open row in
// place; no history of superseded values is kept.
type Entry struct {
	ID           int64
	TeamID       int64
	PlayerID     string
	SeasonID     int64
	Position1    *string
	Position2    *string
	Position3    *string
	JerseyNumber *string
	StartDate    time.Time
	EndDate      time.Time
}

func (e Entry) Open() bool {
	return e.EndDate.Equal(OpenEndDate)
}
