package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
	"github.com/spf13/cobra"
)

var statusJSON bool

// gaugeWidth is the bar width for status text output.
const gaugeWidth = 30

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a single system info snapshot",
	Long: `Fetch system info once and print CPU, memory and disk usage plus the
process count.

Examples:
  sysdash status
  sysdash status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = statusJSON

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return runStatus(cmd.Context(), cmd.OutOrStdout(), s.client, s.cfg, s.source(), statusJSON)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

// runStatus fetches one snapshot from backend and prints it to out.
func runStatus(ctx context.Context, out io.Writer, backend api.Backend, cfg *config.Config, source string, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sp := startSpinner("Fetching system info", jsonOut)
	info, err := backend.SystemInfo(ctx)
	sp.finish(err)
	if err != nil {
		return withBackendHint(errors.Operation(errors.ErrFetchSystemInfo, err), cfg)
	}

	if jsonOut {
		return WriteJSONSuccess(out, info)
	}

	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	t := cfg.Thresholds

	fmt.Fprintf(out, "System %s\n\n", mutedStyle.Render("("+source+")"))
	fmt.Fprintln(out, ui.RenderGauge("CPU", info.CPUPercent, gaugeWidth, t.CPU.Warning, t.CPU.Critical))
	fmt.Fprintln(out, ui.RenderGauge("Memory", info.MemoryPercent, gaugeWidth, t.Memory.Warning, t.Memory.Critical))
	fmt.Fprintln(out, ui.RenderGauge("Disk", info.DiskPercent, gaugeWidth, t.Disk.Warning, t.Disk.Critical))
	fmt.Fprintf(out, "%-7s %d\n", "Procs", info.ProcessCount)
	return nil
}

// withBackendHint attaches a pointer at the configured backend to an operation error.
func withBackendHint(err *errors.Error, cfg *config.Config) *errors.Error {
	if cfg.SSH.Enabled() {
		err.Suggestion = fmt.Sprintf("Is the backend listening at %s on %s?", cfg.APIURL, cfg.SSH.Host)
	} else {
		err.Suggestion = fmt.Sprintf("Is the backend running at %s? Set --api-url or api_url to point elsewhere.", cfg.APIURL)
	}
	return err
}

// cliSpinner wraps ui.Spinner so one-shot commands only animate on a terminal.
type cliSpinner struct {
	s *ui.Spinner
}

func startSpinner(label string, quiet bool) cliSpinner {
	if quiet || !stderrIsTerminal() {
		return cliSpinner{}
	}
	s := ui.NewSpinner(label, os.Stderr)
	s.Start()
	return cliSpinner{s: s}
}

func (c cliSpinner) finish(err error) {
	if c.s == nil {
		return
	}
	if err != nil {
		c.s.Fail()
		return
	}
	c.s.Success()
}
