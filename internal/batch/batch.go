// Package batch plays one game per seed across a bounded worker pool and
// folds every outcome into a single Results value.
package batch

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/MJE43/eda-game-tester/internal/game"
	"github.com/MJE43/eda-game-tester/internal/runner"
)

// Launcher plays the game for a single seed. *runner.Runner is the real
// implementation; tests substitute their own.
type Launcher interface {
	Run(ctx context.Context, seed uint32) (runner.Outcome, error)
}

// Pool fans a seed interval out over a fixed number of workers. Crashes are
// folded into the results and never stop the campaign; any other launcher
// error cancels every worker and aborts the run.
type Pool struct {
	launcher Launcher
	workers  int

	completed uint64
}

// New creates a pool with the given parallelism. workers <= 0 means one
// worker per CPU.
func New(launcher Launcher, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{launcher: launcher, workers: workers}
}

// Workers returns the pool's parallelism.
func (p *Pool) Workers() int { return p.workers }

// Completed returns how many games have finished so far, crashes included.
// It is safe to poll from another goroutine while Run is in flight.
func (p *Pool) Completed() uint64 {
	return atomic.LoadUint64(&p.completed)
}

// Run plays every seed in rng once and returns the folded results. On error
// the partial results are discarded: a worker that cannot complete the
// child protocol poisons the whole campaign.
func (p *Pool) Run(ctx context.Context, rng game.SeedRange) (Results, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	atomic.StoreUint64(&p.completed, 0)

	jobs := make(chan uint32, p.workers*2)
	outcomes := make(chan runner.Outcome, p.workers*2)
	errc := make(chan error, p.workers)

	go p.generateJobs(ctx, rng, jobs)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, cancel, &wg, jobs, outcomes, errc)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var res Results
collect:
	for {
		select {
		case out := <-outcomes:
			res.Add(FromOutcome(out))
		case <-done:
			// Drain outcomes emitted between the last receive and the
			// final worker exit.
			for {
				select {
				case out := <-outcomes:
					res.Add(FromOutcome(out))
				default:
					break collect
				}
			}
		}
	}

	select {
	case err := <-errc:
		return Results{}, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return Results{}, err
	}
	return res, nil
}

// generateJobs feeds every seed of the interval into jobs, honouring
// cancellation. The loop compares against the interval end instead of using
// a < condition so an interval ending at the maximum seed cannot wrap.
func (p *Pool) generateJobs(ctx context.Context, rng game.SeedRange, jobs chan<- uint32) {
	defer close(jobs)
	for seed := rng.Min(); ; seed++ {
		select {
		case jobs <- seed:
		case <-ctx.Done():
			return
		}
		if seed == rng.Max() {
			return
		}
	}
}

// worker plays seeds until the feed is exhausted or the campaign is
// cancelled. Cancellation errors are not reported; the first real error is,
// and it cancels everyone else.
func (p *Pool) worker(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup, jobs <-chan uint32, outcomes chan<- runner.Outcome, errc chan<- error) {
	defer wg.Done()
	for seed := range jobs {
		out, err := p.launcher.Run(ctx, seed)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				select {
				case errc <- err:
				default:
				}
				cancel()
			}
			// Stop pulling work either way; the campaign is over.
			return
		}
		atomic.AddUint64(&p.completed, 1)
		select {
		case outcomes <- out:
		case <-ctx.Done():
			return
		}
	}
}
