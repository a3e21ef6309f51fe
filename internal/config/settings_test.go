package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no nratax.yaml is found
	chdirTemp(t)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, "console", s.Output.Format)
	assert.Equal(t, 4, s.Batch.Concurrency)
	assert.Empty(t, s.RulesFile)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: json
output:
  format: csv
batch:
  concurrency: 8
rules_file: rules-2026.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nratax.yaml"), []byte(yaml), 0644))

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "csv", s.Output.Format)
	assert.Equal(t, 8, s.Batch.Concurrency)
	assert.Equal(t, "rules-2026.yaml", s.RulesFile)
}

func TestLoadExplicitFile(t *testing.T) {
	chdirTemp(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output.Format)
	// Defaults still apply for unset values
	assert.Equal(t, 4, s.Batch.Concurrency)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	chdirTemp(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
output:
  format: csv
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nratax.yaml"), []byte(yaml), 0644))

	t.Setenv("NRATAX_LOG_LEVEL", "warn")
	t.Setenv("NRATAX_OUTPUT_FORMAT", "json")

	s, err := Load("")
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", s.Log.Level)
	assert.Equal(t, "json", s.Output.Format)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("NRATAX_BATCH_CONCURRENCY", "16")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 16, s.Batch.Concurrency)
}

func TestValidateConcurrencyBounds(t *testing.T) {
	tests := []struct {
		concurrency int
		wantErr     bool
	}{
		{0, true},
		{1, false},
		{64, false},
		{65, true},
	}
	for _, tt := range tests {
		s := &Settings{Output: OutputConfig{Format: "console"}, Batch: BatchConfig{Concurrency: tt.concurrency}}
		err := s.Validate()
		if tt.wantErr {
			assert.Error(t, err, "concurrency %d", tt.concurrency)
		} else {
			assert.NoError(t, err, "concurrency %d", tt.concurrency)
		}
	}
}

func TestValidateOutputFormatRequired(t *testing.T) {
	s := &Settings{Batch: BatchConfig{Concurrency: 1}}
	assert.Error(t, s.Validate())
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
