package batch

import (
	"math"

	"github.com/MJE43/eda-game-tester/internal/runner"
)

// PlayerResult accumulates one player's totals across finished games.
type PlayerResult struct {
	TotalPoints uint32 `json:"total_points"`
	TotalWins   uint32 `json:"total_wins"`
}

// ScoreMoments tracks one player's score distribution in mergeable form
// (counts and moment sums rather than raw samples), so spreads can be
// reported without holding every score.
type ScoreMoments struct {
	Games uint64  `json:"games"`
	Sum   float64 `json:"sum"`
	SumSq float64 `json:"sum_sq"`
	Min   uint32  `json:"min"`
	Max   uint32  `json:"max"`
}

// Mean returns the average score over the recorded games.
func (m ScoreMoments) Mean() float64 {
	if m.Games == 0 {
		return 0
	}
	return m.Sum / float64(m.Games)
}

// StdDev returns the population standard deviation of the recorded scores.
func (m ScoreMoments) StdDev() float64 {
	if m.Games == 0 {
		return 0
	}
	mean := m.Mean()
	v := m.SumSq/float64(m.Games) - mean*mean
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

func (m ScoreMoments) merge(other ScoreMoments) ScoreMoments {
	if m.Games == 0 {
		return other
	}
	if other.Games == 0 {
		return m
	}
	out := ScoreMoments{
		Games: m.Games + other.Games,
		Sum:   m.Sum + other.Sum,
		SumSq: m.SumSq + other.SumSq,
		Min:   m.Min,
		Max:   m.Max,
	}
	if other.Min < out.Min {
		out.Min = other.Min
	}
	if other.Max > out.Max {
		out.Max = other.Max
	}
	return out
}

// Results is the aggregate of any number of outcomes: per-seat totals,
// score spread moments and the seeds whose games crashed. The zero value is
// the reduction identity, and merging is associative and commutative in
// every field, so fragments can be folded in any grouping and order. The
// order of FailedSeeds is unspecified; its multiset of seeds is exact.
type Results struct {
	Players     [4]PlayerResult `json:"players"`
	Scores      [4]ScoreMoments `json:"scores"`
	FailedSeeds []uint32        `json:"failed_seeds"`
}

// FromOutcome maps one outcome onto a singleton Results fragment. A
// finished game credits each seat its points and one win to every seat tied
// at the game's maximum, so an all-zero game counts as a four-way tie. A
// crash contributes only its seed.
func FromOutcome(o runner.Outcome) Results {
	var res Results
	if o.Crashed {
		res.FailedSeeds = []uint32{o.Seed}
		return res
	}
	best := o.Points[0]
	for _, p := range o.Points[1:] {
		if p > best {
			best = p
		}
	}
	for i, p := range o.Points {
		res.Players[i].TotalPoints = p
		if p == best {
			res.Players[i].TotalWins = 1
		}
		res.Scores[i] = ScoreMoments{
			Games: 1,
			Sum:   float64(p),
			SumSq: float64(p) * float64(p),
			Min:   p,
			Max:   p,
		}
	}
	return res
}

// Add folds other into r in place.
func (r *Results) Add(other Results) {
	for i := range r.Players {
		r.Players[i].TotalPoints += other.Players[i].TotalPoints
		r.Players[i].TotalWins += other.Players[i].TotalWins
		r.Scores[i] = r.Scores[i].merge(other.Scores[i])
	}
	r.FailedSeeds = append(r.FailedSeeds, other.FailedSeeds...)
}

// Merge returns the combination of two fragments, leaving both inputs
// untouched.
func (r Results) Merge(other Results) Results {
	merged := r.clone()
	merged.Add(other)
	return merged
}

func (r Results) clone() Results {
	c := r
	c.FailedSeeds = append([]uint32(nil), r.FailedSeeds...)
	return c
}
