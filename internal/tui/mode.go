package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how human-readable output is presented.
type OutputMode int

const (
	// OutputModePlain prints unstyled text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs a bubbletea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// DetectOutputMode picks a mode from the explicit flags, the NO_COLOR and
// CI conventions, TERM=dumb and whether stdout is a terminal. Interactive
// mode is only chosen when interactive is requested.
func DetectOutputMode(plain, noColor, interactive bool) OutputMode {
	return detectOutputMode(plain, noColor, interactive, IsTTY(), os.LookupEnv)
}

func detectOutputMode(
	plain, noColor, interactive, tty bool,
	lookupEnv func(string) (string, bool),
) OutputMode {
	if plain || !tty {
		return OutputModePlain
	}
	if v, ok := lookupEnv("TERM"); ok && v == "dumb" {
		return OutputModePlain
	}
	if _, ok := lookupEnv("CI"); ok {
		return OutputModePlain
	}
	if interactive {
		return OutputModeInteractive
	}
	if _, ok := lookupEnv("NO_COLOR"); ok || noColor {
		return OutputModePlain
	}
	return OutputModeStyled
}
