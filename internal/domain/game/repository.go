package game

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("game not found")

type Repository interface {
	GetByID(ctx context.Context, id int64) (Game, error)
	GetByNaturalKey(ctx context.Context, seasonID int64, date time.Time, homeTeamID, awayTeamID int64) (Game, error)
	// UpdateSchedule touches only week number and location, and each only
	// when non-nil; a blank cell never erases a stored value.
	UpdateSchedule(ctx context.Context, id int64, weekNumber *int, location *string) error
	Insert(ctx context.Context, g Game) error
}
