package api

import (
	"fmt"
	"os"

	"github.com/MJE43/eda-game-tester/internal/game"
)

const (
	// maxInstancesPerRequest keeps one request from monopolising the host
	// for hours. Bigger campaigns belong on the CLI.
	maxInstancesPerRequest = 100_000
	maxTimeoutMs           = 3_600_000
	maxSettingsBytes       = 1 << 20
)

// ValidateRunRequest checks a run request before any process is spawned.
func ValidateRunRequest(req *RunRequest) error {
	if len(req.Players) != 4 {
		return fmt.Errorf("players must list exactly 4 names, got %d", len(req.Players))
	}
	for i, name := range req.Players {
		if _, err := game.NewPlayerName(name); err != nil {
			return fmt.Errorf("player %d: name %q exceeds %d bytes", i+1, name, game.MaxPlayerNameBytes)
		}
	}
	if req.Instances == 0 {
		return fmt.Errorf("instances must be at least 1")
	}
	if req.Instances > maxInstancesPerRequest {
		return fmt.Errorf("instances too large, max %d per request", maxInstancesPerRequest)
	}
	if _, err := game.NewSeedRange(req.Seed, req.Instances); err != nil {
		return fmt.Errorf("seed range: %v", err)
	}
	if len(req.SettingsText) > maxSettingsBytes {
		return fmt.Errorf("settings_text too large, max %d bytes", maxSettingsBytes)
	}
	if req.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if req.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms must not be negative")
	}
	if req.TimeoutMs > maxTimeoutMs {
		return fmt.Errorf("timeout_ms too large, max %d", maxTimeoutMs)
	}
	return nil
}

// checkExecutable verifies that path names an executable regular file.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Mode()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}
