package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/dashboard"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
	"github.com/spf13/cobra"
)

var psJSON bool

// psNameWidth is the NAME column width in table output.
const psNameWidth = 32

var psCmd = &cobra.Command{
	Use:   "ps [query]",
	Short: "List processes, optionally filtered by name",
	Long: `Fetch the process list once and print it in backend order.

The optional query keeps processes whose name contains it, ignoring case,
the same way the dashboard filter does.

Examples:
  sysdash ps
  sysdash ps chrome
  sysdash ps --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = psJSON

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return runPS(cmd.Context(), cmd.OutOrStdout(), s.client, s.cfg, query, psJSON)
	},
}

func init() {
	psCmd.Flags().BoolVar(&psJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(psCmd)
}

// PSOutput is the JSON payload for the ps command.
type PSOutput struct {
	Query     string             `json:"query,omitempty"`
	Total     int                `json:"total"`
	Processes []api.ProcessEntry `json:"processes"`
}

// runPS fetches the process list from backend, filters it by query and prints it.
func runPS(ctx context.Context, out io.Writer, backend api.Backend, cfg *config.Config, query string, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sp := startSpinner("Fetching processes", jsonOut)
	procs, err := backend.Processes(ctx)
	sp.finish(err)
	if err != nil {
		return withBackendHint(errors.Operation(errors.ErrFetchProcesses, err), cfg)
	}

	filtered := dashboard.FilterProcesses(procs, query)

	if jsonOut {
		return WriteJSONSuccess(out, PSOutput{
			Query:     query,
			Total:     len(procs),
			Processes: filtered,
		})
	}

	rows := make([]ui.ProcessRow, len(filtered))
	for i, p := range filtered {
		rows[i] = ui.ProcessRow{PID: p.PID, Name: p.Name, MemoryMB: p.Memory}
	}

	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	if query != "" && len(filtered) == 0 {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("No processes match %q", query)))
		return nil
	}

	fmt.Fprintln(out, ui.RenderProcessTable(rows, psNameWidth))
	if query != "" {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d of %d processes", len(filtered), len(procs))))
	} else {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d processes", len(procs))))
	}
	return nil
}
