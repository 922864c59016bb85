package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain writes unstyled text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the screen.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the output mode for stdout.
//
// plain forces OutputModePlain. noColor, NO_COLOR or TERM=dumb also disable
// styling. A non-terminal stdout, or CI set, never gets the interactive mode;
// forceColor styles such output anyway.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detectOutputMode(forceColor, noColor, plain, isTTY bool, getenv func(string) string) OutputMode {
	if plain || noColor || getenv("NO_COLOR") != "" || getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !isTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if getenv("CI") != "" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
