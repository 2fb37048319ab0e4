package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingReference marks a run aborted because a reference row the
	// file depends on (season, team, game) does not exist in the store.
	ErrMissingReference = errors.New("referenced entity not found")
	// ErrNoUsableRows marks a stats run aborted because no row survived
	// filtering; the existing play set is left untouched.
	ErrNoUsableRows = errors.New("no usable rows")
)
