/*
Package config manages TOML config for the triebench harness.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/completrie/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire harness config structure
type Config struct {
	Data  DataConfig  `toml:"data"`
	Bench BenchConfig `toml:"bench"`
}

// DataConfig controls corpus generation.
type DataConfig struct {
	Items    int    `toml:"items"`
	WordLen  int    `toml:"word_len"`
	MaxScore int    `toml:"max_score"`
	Seed     uint64 `toml:"seed"`
}

// BenchConfig controls the measurement runs.
type BenchConfig struct {
	Rounds          int      `toml:"rounds"`
	TopK            int      `toml:"top_k"`
	Prefixes        []string `toml:"prefixes"`
	ZeroMatchPrefix string   `toml:"zero_match_prefix"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Items:    10000,
			WordLen:  10,
			MaxScore: 1000,
			Seed:     42,
		},
		Bench: BenchConfig{
			Rounds:          200,
			TopK:            10,
			Prefixes:        []string{"", "a", "ab"},
			ZeroMatchPrefix: "blahblahgarbage",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Fields absent from the file keep their
// default values; nonsense values are clamped back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	config.normalize()
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// normalize pulls out-of-range values back to the defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Data.Items <= 0 {
		log.Warnf("Invalid items value %d, using %d", c.Data.Items, def.Data.Items)
		c.Data.Items = def.Data.Items
	}
	if c.Data.WordLen <= 0 {
		log.Warnf("Invalid word_len value %d, using %d", c.Data.WordLen, def.Data.WordLen)
		c.Data.WordLen = def.Data.WordLen
	}
	if c.Data.MaxScore <= 0 {
		log.Warnf("Invalid max_score value %d, using %d", c.Data.MaxScore, def.Data.MaxScore)
		c.Data.MaxScore = def.Data.MaxScore
	}
	if c.Bench.Rounds <= 0 {
		c.Bench.Rounds = def.Bench.Rounds
	}
	if c.Bench.TopK <= 0 {
		c.Bench.TopK = def.Bench.TopK
	}
}
