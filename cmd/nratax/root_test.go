package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it wrote to stdout.
// Flag values persist between cobra executions, so every flag is reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeCase(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"tax", "presence", "vehicle", "run", "batch", "rules", "example"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "nratax", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "rules", "format", "output", "year"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "root should have --%s flag", name)
	}
	assert.Equal(t, "0", rootCmd.PersistentFlags().Lookup("year").DefValue)
}

func TestVehicleCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range vehicleCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["eligibility"])
	assert.True(t, names["interest"])
}

func TestCaseCommands_RequireCaseFlag(t *testing.T) {
	for _, c := range []*cobra.Command{taxCmd, presenceCmd, runCmd} {
		flag := c.Flags().Lookup("case")
		require.NotNil(t, flag, "%s should have --case flag", c.Name())
		assert.Equal(t, "c", flag.Shorthand)
	}
	require.NotNil(t, vehicleCmd.PersistentFlags().Lookup("case"))
}

func TestBatchCommand_Flags(t *testing.T) {
	flag := batchCmd.Flags().Lookup("concurrency")
	require.NotNil(t, flag, "batch command should have --concurrency flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestCurrentYear_UsesClock(t *testing.T) {
	restore := nowFunc
	t.Cleanup(func() { nowFunc = restore })

	nowFunc = fixedClock(2027)
	assert.Equal(t, 2027, currentYear())
}

func TestRootCommand_SettingsErrors(t *testing.T) {
	tests := []struct {
		name        string
		configFile  func(t *testing.T) string
		expectError string
	}{
		{
			name:        "missing settings file",
			configFile:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nratax.yaml") },
			expectError: "load config",
		},
		{
			name:        "unknown log level",
			configFile:  func(t *testing.T) string { return writeCase(t, "nratax.yaml", "log:\n  level: loud\n") },
			expectError: "init logger",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "rules", "--config", tt.configFile(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}
