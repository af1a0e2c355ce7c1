package batch

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/MJE43/eda-game-tester/internal/runner"
)

func finished(seed uint32, points [4]uint32) runner.Outcome {
	return runner.Outcome{Seed: seed, Points: points}
}

func crashed(seed uint32) runner.Outcome {
	return runner.Outcome{Seed: seed, Crashed: true}
}

func fold(outcomes ...runner.Outcome) Results {
	var res Results
	for _, o := range outcomes {
		res.Add(FromOutcome(o))
	}
	return res
}

func sortedSeeds(seeds []uint32) []uint32 {
	out := append([]uint32(nil), seeds...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sameAggregate(t *testing.T, a, b Results) {
	t.Helper()
	if a.Players != b.Players {
		t.Errorf("Expected equal player totals, got %v and %v", a.Players, b.Players)
	}
	if a.Scores != b.Scores {
		t.Errorf("Expected equal score moments, got %v and %v", a.Scores, b.Scores)
	}
	as, bs := sortedSeeds(a.FailedSeeds), sortedSeeds(b.FailedSeeds)
	if len(as) != len(bs) {
		t.Fatalf("Expected %d failed seeds, got %d", len(as), len(bs))
	}
	for i := range as {
		if as[i] != bs[i] {
			t.Errorf("Expected failed seeds %v, got %v", as, bs)
			return
		}
	}
}

func TestFromOutcome_WinCredit(t *testing.T) {
	tests := []struct {
		name     string
		points   [4]uint32
		wantWins [4]uint32
	}{
		{
			name:     "single winner",
			points:   [4]uint32{1, 0, 0, 0},
			wantWins: [4]uint32{1, 0, 0, 0},
		},
		{
			name:     "two way tie wins for both",
			points:   [4]uint32{10, 20, 20, 5},
			wantWins: [4]uint32{0, 1, 1, 0},
		},
		{
			name:     "all zero scores are a four way tie",
			points:   [4]uint32{0, 0, 0, 0},
			wantWins: [4]uint32{1, 1, 1, 1},
		},
		{
			name:     "last seat wins",
			points:   [4]uint32{3, 1, 4, 9},
			wantWins: [4]uint32{0, 0, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FromOutcome(finished(1, tt.points))
			for i := range res.Players {
				if res.Players[i].TotalPoints != tt.points[i] {
					t.Errorf("Seat %d: expected %d points, got %d", i, tt.points[i], res.Players[i].TotalPoints)
				}
				if res.Players[i].TotalWins != tt.wantWins[i] {
					t.Errorf("Seat %d: expected %d wins, got %d", i, tt.wantWins[i], res.Players[i].TotalWins)
				}
			}
			if len(res.FailedSeeds) != 0 {
				t.Errorf("Expected no failed seeds, got %v", res.FailedSeeds)
			}
		})
	}
}

func TestFromOutcome_Crash(t *testing.T) {
	res := FromOutcome(crashed(42))
	if res.Players != [4]PlayerResult{} {
		t.Errorf("Expected zero totals for a crash, got %v", res.Players)
	}
	if len(res.FailedSeeds) != 1 || res.FailedSeeds[0] != 42 {
		t.Errorf("Expected failed seeds [42], got %v", res.FailedSeeds)
	}
	if res.Scores != [4]ScoreMoments{} {
		t.Errorf("Expected no score moments for a crash, got %v", res.Scores)
	}
}

func TestResults_FoldWithCrash(t *testing.T) {
	res := fold(
		finished(0, [4]uint32{1, 0, 0, 0}),
		finished(1, [4]uint32{0, 1, 0, 0}),
		finished(2, [4]uint32{2, 0, 0, 0}),
		crashed(3),
	)

	wantPoints := [4]uint32{3, 1, 0, 0}
	wantWins := [4]uint32{2, 1, 0, 0}
	for i := range res.Players {
		if res.Players[i].TotalPoints != wantPoints[i] {
			t.Errorf("Seat %d: expected %d points, got %d", i, wantPoints[i], res.Players[i].TotalPoints)
		}
		if res.Players[i].TotalWins != wantWins[i] {
			t.Errorf("Seat %d: expected %d wins, got %d", i, wantWins[i], res.Players[i].TotalWins)
		}
	}
	if len(res.FailedSeeds) != 1 || res.FailedSeeds[0] != 3 {
		t.Errorf("Expected failed seeds [3], got %v", res.FailedSeeds)
	}

	// 3 of 4 games finished; seat one averages exactly one point.
	ok := float64(4 - len(res.FailedSeeds))
	if avg := float64(res.Players[0].TotalPoints) / ok; avg != 1.0 {
		t.Errorf("Expected seat one average 1.0, got %v", avg)
	}
}

func TestResults_MergeGroupingAndOrder(t *testing.T) {
	outcomes := []runner.Outcome{
		finished(10, [4]uint32{5, 3, 0, 9}),
		crashed(11),
		finished(12, [4]uint32{7, 7, 7, 7}),
		finished(13, [4]uint32{0, 0, 1, 0}),
		crashed(14),
		finished(15, [4]uint32{100, 2, 3, 4}),
	}

	sequential := fold(outcomes...)

	left := fold(outcomes[:2]...)
	right := fold(outcomes[2:]...)
	sameAggregate(t, sequential, left.Merge(right))

	// Pairwise tree, merged in swapped order.
	a := fold(outcomes[0], outcomes[3])
	b := fold(outcomes[5], outcomes[1])
	c := fold(outcomes[2], outcomes[4])
	sameAggregate(t, sequential, c.Merge(b.Merge(a)))

	shuffled := append([]runner.Outcome(nil), outcomes...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	sameAggregate(t, sequential, fold(shuffled...))
}

func TestResults_MergeIdentity(t *testing.T) {
	res := fold(finished(1, [4]uint32{4, 5, 6, 7}), crashed(2))

	var zero Results
	sameAggregate(t, res, zero.Merge(res))
	sameAggregate(t, res, res.Merge(zero))
}

func TestResults_MergeLeavesInputsAlone(t *testing.T) {
	a := FromOutcome(crashed(1))
	b := FromOutcome(crashed(2))
	_ = a.Merge(b)
	_ = a.Merge(b)
	if len(a.FailedSeeds) != 1 || len(b.FailedSeeds) != 1 {
		t.Errorf("Merge mutated its inputs: %v, %v", a.FailedSeeds, b.FailedSeeds)
	}
}

func TestScoreMoments(t *testing.T) {
	res := fold(
		finished(0, [4]uint32{1, 10, 0, 2}),
		finished(1, [4]uint32{2, 10, 0, 2}),
		finished(2, [4]uint32{3, 10, 0, 2}),
		finished(3, [4]uint32{4, 10, 0, 2}),
	)

	m := res.Scores[0]
	if m.Games != 4 {
		t.Fatalf("Expected 4 games, got %d", m.Games)
	}
	if m.Min != 1 || m.Max != 4 {
		t.Errorf("Expected min 1 and max 4, got %d and %d", m.Min, m.Max)
	}
	if m.Mean() != 2.5 {
		t.Errorf("Expected mean 2.5, got %v", m.Mean())
	}
	if want := math.Sqrt(1.25); math.Abs(m.StdDev()-want) > 1e-12 {
		t.Errorf("Expected stddev %v, got %v", want, m.StdDev())
	}

	flat := res.Scores[3]
	if flat.StdDev() != 0 {
		t.Errorf("Expected zero stddev for constant scores, got %v", flat.StdDev())
	}
	if flat.Mean() != 2 {
		t.Errorf("Expected mean 2, got %v", flat.Mean())
	}

	var empty ScoreMoments
	if empty.Mean() != 0 || empty.StdDev() != 0 {
		t.Errorf("Expected zero moments for no games, got mean %v stddev %v", empty.Mean(), empty.StdDev())
	}
}
