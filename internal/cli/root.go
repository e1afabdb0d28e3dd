package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/spf13/cobra"
)

// Persistent flags shared by every command.
var (
	configFlag   string
	apiURLFlag   string
	intervalFlag time.Duration
	sshFlag      string
)

var rootCmd = &cobra.Command{
	Use:   "sysdash",
	Short: "Live system metrics and process control for a metrics backend",
	Long: `sysdash polls a metrics backend for CPU, memory, disk and process
information and shows it in an interactive terminal dashboard.

Running sysdash with no subcommand opens the dashboard. The one-shot
commands (status, ps, kill) make a single request and print the result.

Keyboard shortcuts (dashboard):
  r           Refresh the process list
  /           Filter processes by name
  up/k down/j Move the selection
  x           Kill the selected process
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  sysdash
  sysdash --api-url http://10.0.0.5:8000/api --interval 2s
  sysdash --ssh prod-box
  sysdash ps chrome`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default: .sysdash.yaml, then ~/.config/sysdash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "backend base URL (e.g. http://localhost:8000/api)")
	rootCmd.PersistentFlags().DurationVar(&intervalFlag, "interval", 0, "system info poll interval (e.g. 2s, 5s)")
	rootCmd.PersistentFlags().StringVar(&sshFlag, "ssh", "", "reach the backend through an SSH connection to this host")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if MachineMode() {
		_ = WriteJSONFromError(os.Stdout, err)
	} else {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	os.Exit(1)
}

// formatError renders structured errors as-is and gives cobra's usage
// errors the same look.
func formatError(err error) string {
	if errors.CodeOf(err) != "" {
		return err.Error()
	}
	return errors.New("", err.Error(), "Run 'sysdash --help' for usage.").Error()
}
