// Package ui provides terminal output components for sysdash's one-shot commands.
//
// The interactive dashboard has its own styling in internal/dashboard; this
// package covers what `status`, `ps` and `kill` print to a plain terminal.
//
// # Components Overview
//
//	Spinner      - Animated indicator shown while a backend request is in flight
//	RenderGauge  - Labelled usage bar with threshold colors
//	Tables       - Process listings rendered with the Bubbles table component
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy values, successful operations
//	ColorError     (red)    - Critical values and failures
//	ColorWarning   (yellow) - Values over the warning threshold
//	ColorMuted     (gray)   - Secondary text, timing info
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Fetching system info", os.Stderr)
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
package ui
