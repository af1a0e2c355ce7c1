package game

import (
	"fmt"
	"math"
)

// SeedRange is the closed interval of seeds a test campaign covers.
type SeedRange struct {
	min uint32
	max uint32
}

// NewSeedRange derives the inclusive interval for instances games starting
// at seed. It fails rather than wrap when seed+instances-1 does not fit in
// 32 bits, so every seed handed to the game is the one the user asked for.
func NewSeedRange(seed, instances uint32) (SeedRange, error) {
	if instances == 0 {
		return SeedRange{}, fmt.Errorf("game: %w", ErrNoInstances)
	}
	if instances-1 > math.MaxUint32-seed {
		return SeedRange{}, fmt.Errorf("game: seed %d with %d instances: %w",
			seed, instances, ErrSeedRangeOutOfBounds)
	}
	return SeedRange{min: seed, max: seed + instances - 1}, nil
}

// Min returns the first seed of the interval.
func (r SeedRange) Min() uint32 { return r.min }

// Max returns the last seed of the interval.
func (r SeedRange) Max() uint32 { return r.max }

// Count returns how many seeds the interval holds.
func (r SeedRange) Count() uint32 { return r.max - r.min + 1 }
