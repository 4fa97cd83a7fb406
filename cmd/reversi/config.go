package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config mirrors the engine-tuning knobs also exposed as flags. Grounded on
// frankkopp-FrankyGo's internal/config/config.go: a TOML file decoded on top
// of zero-value defaults, with a missing file silently falling back to
// whatever the flags already set.
type config struct {
	Depth uint   `toml:"depth"`
	Hash  uint   `toml:"hash"`
	Noise uint   `toml:"noise"`
	Seed  int64  `toml:"seed"`
	Book  string `toml:"book"`
}

// loadConfig decodes path into c. A missing file is not an error -- the
// caller's flag defaults stand; any other error reading or decoding the
// file is returned.
func loadConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	_, err := toml.DecodeFile(path, &c)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, err
	}
	return c, nil
}
