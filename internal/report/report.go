// Package report renders aggregated results for humans, as plain text and
// as an HTML chart page.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/MJE43/eda-game-tester/internal/batch"
)

// okGames returns how many of the campaign's games finished.
func okGames(instances uint32, res batch.Results) uint32 {
	return instances - uint32(len(res.FailedSeeds))
}

// sortedSeeds returns the failed seeds in ascending order without touching
// the input.
func sortedSeeds(seeds []uint32) []uint32 {
	out := append([]uint32(nil), seeds...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Write prints the standard results block: average points and win rate per
// player over the games that finished, then any crashed seeds in ascending
// order.
func Write(w io.Writer, names [4]string, instances uint32, res batch.Results) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Game results:")
	ok := okGames(instances, res)
	if ok == 0 {
		fmt.Fprintln(bw, "No games finished successfully.")
	} else {
		for i, pr := range res.Players {
			avg := float64(pr.TotalPoints) / float64(ok)
			wr := float64(pr.TotalWins) * 100 / float64(ok)
			fmt.Fprintf(bw, "=> Player %s got %v points in average (%v%% WR)\n", names[i], avg, wr)
		}
	}
	fmt.Fprintln(bw)

	if len(res.FailedSeeds) > 0 {
		fmt.Fprintln(bw, "Some games crashed! Faulty seeds:")
		for _, seed := range sortedSeeds(res.FailedSeeds) {
			fmt.Fprintf(bw, "=> %d\n", seed)
		}
	}

	return bw.Flush()
}

// WriteStats prints the per-player score spread over finished games.
func WriteStats(w io.Writer, names [4]string, res batch.Results) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Score spread:")
	for i, m := range res.Scores {
		if m.Games == 0 {
			fmt.Fprintf(bw, "=> Player %s: no finished games\n", names[i])
			continue
		}
		fmt.Fprintf(bw, "=> Player %s: min %d, avg %.2f, max %d (stddev %.2f)\n",
			names[i], m.Min, m.Mean(), m.Max, m.StdDev())
	}

	return bw.Flush()
}
