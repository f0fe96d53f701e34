package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Report formats understood by the build evaluator.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Calculator holds the configuration of the build evaluation tool.
// Game constants are not configuration; they ship with the game data.
type Calculator struct {
	LogLevel string `yaml:"log_level"`

	// DataDir overrides the embedded game-data tables. Empty uses the
	// embedded set.
	DataDir string `yaml:"data_dir"`

	// Optimizer worker limit (0 = GOMAXPROCS)
	Parallelism int `yaml:"parallelism"`

	// TargetLevel picks the resistance from the resistance table.
	// 0 keeps the standard boss.
	TargetLevel int `yaml:"target_level"`

	ReportFormat string `yaml:"report_format"`
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel:     "info",
		ReportFormat: FormatText,
	}
}

// LoadCalculator loads tool config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Calculator) validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.ReportFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown report format %q", c.ReportFormat)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("negative parallelism %d", c.Parallelism)
	}
	if c.TargetLevel < 0 {
		return fmt.Errorf("negative target level %d", c.TargetLevel)
	}
	return nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c Calculator) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
