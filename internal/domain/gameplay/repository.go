package gameplay

import "context"

type Repository interface {
	// DeleteByGame clears every play for a game, returning the count removed.
	DeleteByGame(ctx context.Context, gameID int64) (int64, error)
	InsertMany(ctx context.Context, plays []Play) error
}
