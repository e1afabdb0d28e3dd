package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
	"github.com/spf13/cobra"
)

var (
	killYes  bool
	killJSON bool
)

var killCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Ask the backend to terminate a process",
	Long: `Send a kill request for one process id.

On a terminal you are asked to confirm first. Pass --yes to skip the prompt;
it is required when stdin is not a terminal or with --json.

Examples:
  sysdash kill 4242
  sysdash kill 4242 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = killJSON

		pid, err := parsePID(args[0])
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		return runKill(cmd.Context(), cmd.OutOrStdout(), s.client, s.cfg, pid, killOptions{
			yes:     killYes,
			jsonOut: killJSON,
		})
	},
}

func init() {
	killCmd.Flags().BoolVarP(&killYes, "yes", "y", false, "skip the confirmation prompt")
	killCmd.Flags().BoolVar(&killJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(killCmd)
}

type killOptions struct {
	yes     bool
	jsonOut bool
}

// KillOutput is the JSON payload for the kill command.
type KillOutput struct {
	PID    int  `json:"pid"`
	Killed bool `json:"killed"`
}

// confirmKill asks on the terminal whether to kill pid.
var confirmKill = func(pid int) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Kill process %d?", pid)).
				Affirmative("Kill").
				Negative("Cancel").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func parsePID(arg string) (int, error) {
	pid, err := strconv.Atoi(arg)
	if err != nil || pid <= 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a process id", arg),
			"Pass a positive number, e.g. sysdash kill 4242. Use 'sysdash ps <name>' to look one up.")
	}
	return pid, nil
}

// runKill confirms if needed, then sends one kill request for pid.
func runKill(ctx context.Context, out io.Writer, backend api.Backend, cfg *config.Config, pid int, opts killOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if !opts.yes {
		if opts.jsonOut || !stdinIsTerminal() {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Not killing %d without confirmation", pid),
				"Pass --yes to skip the prompt.")
		}
		ok, err := confirmKill(pid)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Pass --yes to skip the prompt.")
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	sp := startSpinner(fmt.Sprintf("Killing %d", pid), opts.jsonOut)
	err := backend.KillProcess(ctx, pid)
	sp.finish(err)
	if err != nil {
		return withBackendHint(errors.Operation(errors.ErrKillProcess, err), cfg)
	}

	if opts.jsonOut {
		return WriteJSONSuccess(out, KillOutput{PID: pid, Killed: true})
	}

	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Fprintf(out, "%s Killed process %d\n", successStyle.Render(ui.SymbolSuccess), pid)
	return nil
}
