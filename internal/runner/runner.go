// Package runner spawns one game process per seed and turns its exit status
// and diagnostic output into an outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/MJE43/eda-game-tester/internal/game"
)

// Outcome is the result of a single game. Crashed outcomes carry no points;
// successful outcomes carry the positional scores parsed from diagnostics.
type Outcome struct {
	Seed    uint32
	Crashed bool
	Points  [4]uint32
}

// Runner launches the external game for single seeds out of a shared
// read-only configuration. It is safe for concurrent use.
type Runner struct {
	cfg *game.Config
}

// New creates a Runner for the given configuration.
func New(cfg *game.Config) *Runner {
	return &Runner{cfg: cfg}
}

// Run plays one game for the given seed.
//
// The child gets the four player names and "-s <seed>" as arguments and the
// settings blob on stdin, which is then closed so the game sees EOF. Board
// output on stdout goes to the null device. Diagnostics on stderr are read
// to completion before waiting on the process, so a full pipe can never
// wedge the exit. A nonzero exit is a crash outcome, not an error; a
// returned error means the harness itself could not complete the exchange
// and the whole campaign should stop.
func (r *Runner) Run(ctx context.Context, seed uint32) (Outcome, error) {
	args := make([]string, 0, 6)
	for _, p := range r.cfg.Players {
		args = append(args, p.Raw())
	}
	args = append(args, "-s", strconv.FormatUint(uint64(seed), 10))

	cmd := exec.CommandContext(ctx, r.cfg.GameBinary, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Outcome{}, &ChildIOError{Seed: seed, Op: "open stdin", Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Outcome{}, &ChildIOError{Seed: seed, Op: "open stderr", Err: err}
	}

	if err := cmd.Start(); err != nil {
		return Outcome{}, fmt.Errorf("runner: start %s: %w", r.cfg.GameBinary, err)
	}

	if _, err := stdin.Write(r.cfg.Settings); err != nil {
		reap(cmd)
		return Outcome{}, &ChildIOError{Seed: seed, Op: "write settings", Err: err}
	}
	if err := stdin.Close(); err != nil {
		reap(cmd)
		return Outcome{}, &ChildIOError{Seed: seed, Op: "close stdin", Err: err}
	}

	diag, err := io.ReadAll(stderr)
	if err != nil {
		reap(cmd)
		return Outcome{}, &ChildIOError{Seed: seed, Op: "read diagnostics", Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			if ctx.Err() != nil {
				// Torn down by cancellation, not by the game.
				return Outcome{}, ctx.Err()
			}
			return Outcome{Seed: seed, Crashed: true}, nil
		}
		return Outcome{}, fmt.Errorf("runner: wait for game (seed %d): %w", seed, err)
	}

	return Outcome{Seed: seed, Points: ParseScores(diag)}, nil
}

// reap tears a child down after a protocol failure so no zombie survives.
func reap(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}
