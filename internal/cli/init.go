package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/ui"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sysdash.yaml configuration",
	Long: `Write a starter .sysdash.yaml in the current directory.

The file holds the defaults, with any --api-url, --interval or --ssh flags
applied on top.

Examples:
  sysdash init
  sysdash init --api-url http://10.0.0.5:8000/api
  sysdash init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.OutOrStdout(), InitOptions{
			Dir:   ".",
			Force: initForce,
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir   string // Directory to write the config into
	Force bool   // Overwrite existing config without asking
}

// confirmOverwrite asks whether an existing config should be replaced.
var confirmOverwrite = func(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}

// Init writes a starter config file into opts.Dir.
func Init(out io.Writer, opts InitOptions) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	force := opts.Force
	if _, err := os.Stat(configPath); err == nil && !force && stdinIsTerminal() {
		overwrite, err := confirmOverwrite(configPath)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		force = true
	}

	cfg := config.DefaultConfig()
	applyFlagOverrides(cfg)

	if err := config.WriteStarter(configPath, cfg, force); err != nil {
		return err
	}

	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	fmt.Fprintf(out, "%s Wrote %s\n", successStyle.Render(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, mutedStyle.Render("  backend: "+cfg.APIURL))
	if cfg.SSH.Enabled() {
		fmt.Fprintln(out, mutedStyle.Render("  via ssh: "+cfg.SSH.Host))
	}
	return nil
}
