// Package cli implements the sysdash command-line interface.
//
// The root command "sysdash" opens the interactive dashboard. The other
// commands make one backend request each and print the result:
//
//	sysdash status [--json]        - One system info snapshot
//	sysdash ps [query] [--json]    - Process list, filtered by name
//	sysdash kill <pid> [--yes]     - Terminate one process
//	sysdash init [--force]         - Write a starter .sysdash.yaml
//	sysdash version [--short]      - Build information
//	sysdash completion <shell>     - Shell completion script
//
// # Flag Handling
//
// Persistent flags (--config, --api-url, --interval, --ssh) are defined on
// the root command and applied on top of the loaded config before it is
// validated. Precedence is flags, then SYSDASH_* environment variables
// (including a .env file in the working directory), then the config file,
// then built-in defaults.
//
// # Output
//
// Commands write to cmd.OutOrStdout so tests can capture them. With --json
// every result, including failures, is wrapped in a JSONEnvelope on stdout.
// Without it, failures are printed to stderr in the structured
// "✗ message / cause / suggestion" layout.
package cli
