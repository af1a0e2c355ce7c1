package game

import (
	"errors"
	"math"
	"testing"
)

func testPlayers(t *testing.T) [4]PlayerName {
	t.Helper()
	var players [4]PlayerName
	for i, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		p, err := NewPlayerName(name)
		if err != nil {
			t.Fatalf("NewPlayerName(%q) failed: %v", name, err)
		}
		players[i] = p
	}
	return players
}

func TestNewConfig(t *testing.T) {
	players := testPlayers(t)

	cfg, err := NewConfig(players, 10, 5, []byte("cnf"), "")
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.GameBinary != DefaultGameBinary {
		t.Errorf("Expected default binary %q, got %q", DefaultGameBinary, cfg.GameBinary)
	}
	if cfg.Instances() != 5 {
		t.Errorf("Expected 5 instances, got %d", cfg.Instances())
	}
	if cfg.Range.Min() != 10 || cfg.Range.Max() != 14 {
		t.Errorf("Expected range [10, 14], got [%d, %d]", cfg.Range.Min(), cfg.Range.Max())
	}
	if string(cfg.Settings) != "cnf" {
		t.Errorf("Expected settings %q, got %q", "cnf", cfg.Settings)
	}
}

func TestNewConfig_ExplicitBinary(t *testing.T) {
	cfg, err := NewConfig(testPlayers(t), 0, 1, nil, "/opt/games/Game")
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	if cfg.GameBinary != "/opt/games/Game" {
		t.Errorf("Expected explicit binary to be kept, got %q", cfg.GameBinary)
	}
}

func TestNewConfig_RangeOverflow(t *testing.T) {
	_, err := NewConfig(testPlayers(t), math.MaxUint32, 2, nil, "")
	if err == nil {
		t.Fatal("Expected range overflow error, got none")
	}
	if !errors.Is(err, ErrSeedRangeOutOfBounds) {
		t.Errorf("Expected ErrSeedRangeOutOfBounds, got %v", err)
	}
}

func TestConfig_DisplayNames(t *testing.T) {
	raw, err := NewPlayerName("Bot\x00")
	if err != nil {
		t.Fatalf("NewPlayerName failed: %v", err)
	}
	players := testPlayers(t)
	players[2] = raw

	cfg, err := NewConfig(players, 0, 1, nil, "")
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	want := [4]string{"Alice", "Bob", "Bot", "Dave"}
	if got := cfg.DisplayNames(); got != want {
		t.Errorf("Expected names %v, got %v", want, got)
	}
}
