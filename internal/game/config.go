package game

// DefaultGameBinary is where the game executable is looked for when no
// explicit path is configured.
const DefaultGameBinary = "./Game"

// Config is the immutable description of one test campaign. It is shared
// read-only across every worker; nothing in it may be mutated once built.
type Config struct {
	Players    [4]PlayerName
	Range      SeedRange
	Settings   []byte
	GameBinary string
}

// NewConfig validates the seed interval and assembles a Config. An empty
// binary path falls back to DefaultGameBinary. The settings blob is passed
// to every game verbatim; callers must not modify it afterwards.
func NewConfig(players [4]PlayerName, seed, instances uint32, settings []byte, gameBinary string) (*Config, error) {
	rng, err := NewSeedRange(seed, instances)
	if err != nil {
		return nil, err
	}
	if gameBinary == "" {
		gameBinary = DefaultGameBinary
	}
	return &Config{
		Players:    players,
		Range:      rng,
		Settings:   settings,
		GameBinary: gameBinary,
	}, nil
}

// Instances returns the number of games this configuration runs.
func (c *Config) Instances() uint32 { return c.Range.Count() }

// DisplayNames returns the four player names in display form, in seat order.
func (c *Config) DisplayNames() [4]string {
	var names [4]string
	for i, p := range c.Players {
		names[i] = p.String()
	}
	return names
}
