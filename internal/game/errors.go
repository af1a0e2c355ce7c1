package game

import "errors"

var (
	ErrSeedRangeOutOfBounds = errors.New("seed range goes out of bounds")
	ErrPlayerNameTooLong    = errors.New("player name too long")
	ErrNoInstances          = errors.New("instance count must be positive")
)
