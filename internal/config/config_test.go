package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "buildcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCalculatorMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadCalculator(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCalculator(), cfg)
}

func TestLoadCalculatorOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
log_level: debug
data_dir: /srv/gamedata
parallelism: 4
target_level: 90
report_format: json
`)
	cfg, err := LoadCalculator(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/gamedata", cfg.DataDir)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, 90, cfg.TargetLevel)
	assert.Equal(t, FormatJSON, cfg.ReportFormat)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadCalculatorPartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadCalculator(writeConfig(t, "parallelism: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.ReportFormat)
	assert.Equal(t, 2, cfg.Parallelism)
}

func TestLoadCalculatorErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"malformed", "log_level: [\n"},
		{"bad level", "log_level: loud\n"},
		{"bad format", "report_format: xml\n"},
		{"negative parallelism", "parallelism: -1\n"},
		{"negative level", "target_level: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadCalculator(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}
