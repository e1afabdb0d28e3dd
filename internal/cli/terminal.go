package cli

import (
	"os"

	"golang.org/x/term"
)

// Terminal checks are variables so tests can pin them.
var (
	stdinIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd()))
	}
	stderrIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
)
