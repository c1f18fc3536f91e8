package layout

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowgraph/pkg/errors"
)

// Config carries the spacing constants of the layout engine. It is threaded
// explicitly into the layouter rather than referenced as ambient globals.
type Config struct {
	// LayerSpacing is the vertical gap between consecutive ranks.
	LayerSpacing float64 `toml:"layer_spacing"`
	// NodeSpacing is the horizontal gap between neighbors within a rank.
	NodeSpacing float64 `toml:"node_spacing"`
	// BackedgeSpacing is the horizontal gap between back-edge lanes.
	BackedgeSpacing float64 `toml:"backedge_spacing"`
}

// DefaultConfig returns the spacing constants used when no configuration
// file is given.
func DefaultConfig() Config {
	return Config{
		LayerSpacing:    40,
		NodeSpacing:     30,
		BackedgeSpacing: 20,
	}
}

// LoadConfig reads spacing overrides from a TOML file. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all spacing values are positive.
func (c Config) Validate() error {
	if c.LayerSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layer_spacing must be positive, got %v", c.LayerSpacing)
	}
	if c.NodeSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "node_spacing must be positive, got %v", c.NodeSpacing)
	}
	if c.BackedgeSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "backedge_spacing must be positive, got %v", c.BackedgeSpacing)
	}
	return nil
}
