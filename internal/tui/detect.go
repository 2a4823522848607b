package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for snowbatch.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode decides between interactive and non-interactive operation.
// Batch loads frequently run unattended, so anything that smells like
// automation wins over the terminal check:
//   - SNOWBATCH_NON_INTERACTIVE=1 (explicit override)
//   - CI set (common CI/CD convention)
//   - NO_COLOR set (accessibility/automation indicator)
//
// Otherwise both stdin and stdout must be terminals: the password prompt
// reads stdin, the table picker renders to stdout.
func DetectMode() Mode {
	if os.Getenv("SNOWBATCH_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	for _, name := range []string{"CI", "NO_COLOR"} {
		if os.Getenv(name) != "" {
			return ModeNonInteractive
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive reports whether snowbatch is running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
