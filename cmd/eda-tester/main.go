package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/MJE43/eda-game-tester/internal/batch"
	"github.com/MJE43/eda-game-tester/internal/game"
	"github.com/MJE43/eda-game-tester/internal/report"
	"github.com/MJE43/eda-game-tester/internal/runner"
	"github.com/MJE43/eda-game-tester/internal/version"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `eda-tester plays many seeded games of an external Game binary in parallel
and reports per-player averages, win rates and crashing seeds.

Usage:
  eda-tester [flags] player1 player2 player3 player4

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("eda-tester: ")

	var (
		instances   uint64
		seed        uint64
		settings    string
		gameBinary  string
		workers     int
		htmlPath    string
		quiet       bool
		showStats   bool
		showVersion bool
	)

	flag.Uint64Var(&instances, "instances", 100, "number of games to play")
	flag.Uint64Var(&instances, "i", 100, "number of games to play (alias for -instances)")
	flag.Uint64Var(&seed, "seed", 0, "seed of the first game")
	flag.Uint64Var(&seed, "s", 0, "seed of the first game (alias for -seed)")
	flag.StringVar(&settings, "game-settings", "default.cnf", "settings file piped to every game")
	flag.StringVar(&settings, "g", "default.cnf", "settings file (alias for -game-settings)")
	flag.StringVar(&gameBinary, "game", game.DefaultGameBinary, "path of the game executable")
	flag.IntVar(&workers, "workers", 0, "games in flight at once (0 means one per CPU)")
	flag.IntVar(&workers, "w", 0, "games in flight at once (alias for -workers)")
	flag.StringVar(&htmlPath, "html", "", "also write an HTML chart report to this file")
	flag.BoolVar(&quiet, "quiet", false, "disable the progress bar")
	flag.BoolVar(&quiet, "q", false, "disable the progress bar (alias for -quiet)")
	flag.BoolVar(&showStats, "stats", false, "print the per-player score spread after the results")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("eda-tester %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	names := flag.Args()
	if len(names) != 4 {
		fmt.Fprintf(os.Stderr, "expected exactly 4 player names, got %d\n\n", len(names))
		flag.Usage()
		os.Exit(2)
	}
	if seed > math.MaxUint32 {
		log.Fatalf("seed %d does not fit in 32 bits", seed)
	}
	if instances == 0 || instances > math.MaxUint32 {
		log.Fatalf("instances must be between 1 and %d", uint64(math.MaxUint32))
	}

	var players [4]game.PlayerName
	for i, name := range names {
		p, err := game.NewPlayerName(name)
		if err != nil {
			log.Fatalf("player %d: %v", i+1, err)
		}
		players[i] = p
	}

	blob, err := os.ReadFile(settings)
	if err != nil {
		log.Fatalf("read game settings: %v", err)
	}

	cfg, err := game.NewConfig(players, uint32(seed), uint32(instances), blob, gameBinary)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := batch.New(runner.New(cfg), workers)

	runDone := make(chan struct{})
	progressDone := make(chan struct{})
	if quiet {
		close(progressDone)
	} else {
		go trackProgress(pool, cfg.Instances(), runDone, progressDone)
	}

	res, err := pool.Run(ctx, cfg.Range)
	close(runDone)
	<-progressDone
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := report.Write(os.Stdout, cfg.DisplayNames(), cfg.Instances(), res); err != nil {
		log.Fatalf("write report: %v", err)
	}
	if showStats {
		if err := report.WriteStats(os.Stdout, cfg.DisplayNames(), res); err != nil {
			log.Fatalf("write stats: %v", err)
		}
	}
	if htmlPath != "" {
		if err := writeHTMLReport(htmlPath, cfg, res); err != nil {
			log.Fatalf("write HTML report: %v", err)
		}
		log.Printf("HTML report written to %s", htmlPath)
	}
}

// trackProgress polls the pool's completion counter onto a progress bar
// until the run finishes.
func trackProgress(pool *batch.Pool, total uint32, runDone <-chan struct{}, progressDone chan<- struct{}) {
	defer close(progressDone)

	bar := progressbar.NewOptions(int(total),
		progressbar.OptionSetDescription("Running games..."),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "=", SaucerHead: ">", SaucerPadding: " ", BarStart: "[", BarEnd: "]",
		}),
	)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = bar.Set64(int64(pool.Completed()))
		case <-runDone:
			_ = bar.Set64(int64(pool.Completed()))
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
			return
		}
	}
}

func writeHTMLReport(path string, cfg *game.Config, res batch.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteHTML(f, cfg.DisplayNames(), cfg.Instances(), res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
