package project

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pubgraph/pkg/errors"
)

// ConfigFile holds per-project crawl defaults.
const ConfigFile = "pubgraph.toml"

// Config is the content of pubgraph.toml. Zero values mean "not set".
type Config struct {
	Start  string   `toml:"start"`
	Output string   `toml:"output"`
	Limit  int      `toml:"limit"`
	Fanout int      `toml:"fanout"`
	Ignore []string `toml:"ignore"`
}

// LoadConfig reads root/pubgraph.toml. A missing file yields an empty Config.
// Returns an INVALID_CONFIG error for malformed TOML, unknown keys or
// negative numbers.
func LoadConfig(root string) (Config, error) {
	var cfg Config
	path := filepath.Join(root, ConfigFile)

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeReadFailed, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", ConfigFile)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undec[0].String(), ConfigFile)
	}
	if cfg.Limit < 0 || cfg.Fanout < 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "limit and fanout must not be negative")
	}
	return cfg, nil
}
