package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/MJE43/eda-game-tester/internal/api"
	"github.com/MJE43/eda-game-tester/internal/version"
)

// serviceConfig is read from the environment, then overridden by flags.
type serviceConfig struct {
	Addr         string `env:"EDA_TESTER_ADDR" envDefault:"127.0.0.1:8077"`
	GameBinary   string `env:"EDA_TESTER_GAME" envDefault:"./Game"`
	SettingsPath string `env:"EDA_TESTER_SETTINGS" envDefault:"default.cnf"`
	Token        string `env:"EDA_TESTER_TOKEN"`
	MaxStored    int    `env:"EDA_TESTER_MAX_RUNS" envDefault:"100"`
}

func main() {
	logger := log.New(os.Stdout, "[eda-testerd] ", log.LstdFlags)

	var cfg serviceConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Fatalf("parse environment: %v", err)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.GameBinary, "game", cfg.GameBinary, "path of the game executable")
	flag.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "settings file used when a request carries none")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("eda-testerd %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	server := api.NewServer(api.Config{
		GameBinary:   cfg.GameBinary,
		SettingsPath: cfg.SettingsPath,
		Token:        cfg.Token,
		MaxStored:    cfg.MaxStored,
	})

	httpServer := &http.Server{
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		logger.Fatalf("listen on %s: %v", cfg.Addr, err)
	}

	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("serve: %v", err)
		}
	}()
	logger.Printf("listening on %s (game=%s settings=%s)", cfg.Addr, cfg.GameBinary, cfg.SettingsPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	stop()

	logger.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
