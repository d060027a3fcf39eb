package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/config"
)

// findSubcommand returns the direct child of cmd named name, or nil.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}
	return nil
}

// useTempHome points ECOTRACK_HOME at a fresh directory and resets global
// config around the test.
func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ECOTRACK_HOME", dir)
	t.Setenv("ECOTRACK_LOGGING_LEVEL", "error")
	t.Setenv("NO_COLOR", "1")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}
