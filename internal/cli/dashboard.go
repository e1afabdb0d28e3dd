package cli

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysdash/internal/dashboard"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
)

// debugLogFile receives log output while the dashboard owns the terminal.
const debugLogFile = "sysdash-debug.log"

// dashboardCommand starts the interactive dashboard.
func dashboardCommand() error {
	restore, err := dashboardLogging(debugLogFile)
	if err != nil {
		return err
	}
	defer restore()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	opts := dashboard.OptionsFromConfig(s.cfg, s.source())
	opts.Logger = logger.For("dashboard")
	model := dashboard.NewModel(s.client, opts)

	// Quitting tears the poll down inside the program, before Run returns.
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// dashboardLogging keeps the standard logger off the terminal while the TUI
// runs. With SYSDASH_DEBUG set, output goes to path; otherwise it is dropped.
// The returned func puts the previous output and prefix back.
func dashboardLogging(path string) (func(), error) {
	prevOut, prevPrefix := log.Writer(), log.Prefix()
	restore := func() {
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
	}

	if !logger.DebugEnabled() {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := tea.LogToFile(path, "sysdash")
	if err != nil {
		restore()
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open "+path,
			"Unset SYSDASH_DEBUG or run from a writable directory.")
	}
	return func() {
		restore()
		_ = f.Close()
	}, nil
}
