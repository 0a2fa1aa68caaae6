package main

import (
	"errors"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds settings loadable from an optional kushc.toml file,
// overridable by command-line flags. Mirrors the teacher's pattern of a
// small TOML-backed settings struct read once at startup.
type Config struct {
	Core       bool   `toml:"core"`
	ReportWrap int    `toml:"report_wrap"`
	Package    string `toml:"package"`
}

// DefaultConfig returns the settings used when no kushc.toml is present.
func DefaultConfig() Config {
	return Config{Core: false, ReportWrap: 100, Package: "default"}
}

// LoadConfig reads path as TOML into a copy of DefaultConfig. If required
// is false (the caller is using the default "kushc.toml" rather than an
// explicit --config), a missing file is not an error: the defaults are
// returned unchanged. A present-but-malformed file, or a missing file
// that was explicitly requested, is always an error.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, err
	}
	return cfg, nil
}
