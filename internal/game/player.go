// Package game defines the validated inputs a test campaign is built from:
// player names, the seed interval and the immutable run configuration.
package game

import (
	"fmt"
	"strings"
)

// MaxPlayerNameBytes is the longest player name the game accepts, in bytes.
const MaxPlayerNameBytes = 12

// PlayerName is an immutable, length-checked player name. The raw bytes are
// what the game binary receives as an argument; String renders a best-effort
// form for the harness's own output.
type PlayerName struct {
	raw string
}

// NewPlayerName validates name against the game's length limit. The limit is
// counted in bytes, not runes, so multi-byte names hit it sooner.
func NewPlayerName(name string) (PlayerName, error) {
	if len(name) > MaxPlayerNameBytes {
		return PlayerName{}, fmt.Errorf("game: name %q is %d bytes, max %d: %w",
			name, len(name), MaxPlayerNameBytes, ErrPlayerNameTooLong)
	}
	return PlayerName{raw: name}, nil
}

// Raw returns the validated bytes exactly as supplied.
func (p PlayerName) Raw() string { return p.raw }

// String returns the display form: trailing NUL bytes stripped and invalid
// UTF-8 sequences replaced with U+FFFD.
func (p PlayerName) String() string {
	return strings.ToValidUTF8(strings.TrimRight(p.raw, "\x00"), "�")
}
