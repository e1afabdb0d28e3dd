// Package dashboard implements the interactive sysdash TUI.
//
// The dashboard shows aggregate CPU, memory and disk usage for one host plus
// a filterable process list with a kill action. All data comes from the
// metrics backend through api.Backend.
//
// # Architecture
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: owns the ViewState and the UI widgets (filter input, spinner, help)
//   - Update: applies keystrokes, ticks and request results
//   - View: renders a read-only copy of the state
//
// # Operations
//
// Three operations mutate the ViewState. Each one marks the state loading,
// clears the current error and returns a tea.Cmd that performs the request:
//
//	FetchSystemInfo  GET  /system-info   replaces SystemInfo on success
//	FetchProcesses   GET  /processes     replaces Processes on success
//	KillProcess      POST /kill-process  triggers exactly one FetchProcesses on success
//
// A failure stores a coded *errors.Error whose message is fixed per
// operation. The cause is logged at debug level but never rendered.
//
// # Message Flow
//
//  1. Init emits an immediate tickMsg
//  2. each tickMsg starts FetchSystemInfo and schedules the next tick
//  3. result messages update the state in arrival order
//  4. Teardown stops the tick chain; late results are still applied
//
// Requests are not fenced against each other. When two requests of the same
// kind overlap, whichever result arrives last wins, and Loading drops to
// false as soon as any request resolves.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh process list
//	/           - Filter processes by name
//	j/k, ↑/↓    - Move selection
//	x           - Kill selected process
//	?           - Toggle help overlay
package dashboard
