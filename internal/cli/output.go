package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/tui"
)

// OutputFormat is a machine- or human-readable rendering.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// tabPadding is the column gap for tabwriter tables.
const tabPadding = 2

// resolveOutputFormat returns flag if set, otherwise the configured default.
func resolveOutputFormat(flag string) (OutputFormat, error) {
	if flag == "" {
		flag = config.GetDefaultOutputFormat()
	}
	f := OutputFormat(flag)
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", flag)
	}
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// writeNDJSON writes each item on its own line.
func writeNDJSON[T any](w io.Writer, items []T) error {
	encoder := json.NewEncoder(w)
	for _, item := range items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

// terminalWidth returns the stdout width, or 0 when unknown.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w
	}
	return 0
}

// outputMode resolves the rendering mode for cmd from --no-color and the
// terminal. interactive requests a TUI where one is available.
func outputMode(cmd *cobra.Command, interactive bool) tui.OutputMode {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return tui.DetectOutputMode(false, noColor, interactive)
}

// styledOutput reports whether table output should use lipgloss styling.
func styledOutput(cmd *cobra.Command) bool {
	return outputMode(cmd, false) != tui.OutputModePlain
}
