// Package config reads the optional iconfit.toml manifest.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the manifest looked up in the working directory.
const DefaultFile = "iconfit.toml"

// Config carries the tool settings. Zero values defer to the package
// defaults downstream (24 units, GOMAXPROCS workers, 256 pixel
// previews), so a partial manifest only overrides what it names.
type Config struct {
	Normalize NormalizeConfig `toml:"normalize"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Cache     CacheConfig     `toml:"cache"`
	Preview   PreviewConfig   `toml:"preview"`
}

// NormalizeConfig is the [normalize] section.
type NormalizeConfig struct {
	Size float64 `toml:"size"`
}

// PipelineConfig is the [pipeline] section.
type PipelineConfig struct {
	Jobs int `toml:"jobs"`
}

// CacheConfig is the [cache] section.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// PreviewConfig is the [preview] section.
type PreviewConfig struct {
	Size  int    `toml:"size"`
	Color string `toml:"color"`
}

// Default returns the settings used when no manifest is present.
func Default() Config {
	return Config{
		Cache:   CacheConfig{Enabled: true},
		Preview: PreviewConfig{Color: "black"},
	}
}

// Load reads the manifest at path. A missing file yields the defaults;
// values that are present must be usable.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("normalize", "size") && cfg.Normalize.Size <= 0 {
		return Config{}, fmt.Errorf("%s: [normalize].size must be positive, got %g", path, cfg.Normalize.Size)
	}
	if meta.IsDefined("pipeline", "jobs") && cfg.Pipeline.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [pipeline].jobs must not be negative, got %d", path, cfg.Pipeline.Jobs)
	}
	if meta.IsDefined("preview", "size") && cfg.Preview.Size <= 0 {
		return Config{}, fmt.Errorf("%s: [preview].size must be positive, got %d", path, cfg.Preview.Size)
	}
	return cfg, nil
}
