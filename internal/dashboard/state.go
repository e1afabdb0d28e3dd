package dashboard

import (
	"strings"

	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

// ViewState is everything the dashboard knows about the backend.
// Processes is always the result of the most recent successful fetch, or empty.
type ViewState struct {
	SystemInfo  *api.SystemInfo // nil until the first successful fetch
	Processes   []api.ProcessEntry
	Loading     bool
	Err         *errors.Error
	FilterQuery string
}

// clone returns a copy that shares nothing mutable with s.
func (s ViewState) clone() ViewState {
	out := s
	if s.SystemInfo != nil {
		info := *s.SystemInfo
		out.SystemInfo = &info
	}
	out.Processes = append([]api.ProcessEntry{}, s.Processes...)
	return out
}

// FilterProcesses returns the entries whose name contains query, ignoring case,
// in their original order. An empty query returns every entry.
// The input slice is never modified.
func FilterProcesses(processes []api.ProcessEntry, query string) []api.ProcessEntry {
	if query == "" {
		return append([]api.ProcessEntry{}, processes...)
	}

	needle := strings.ToLower(query)
	filtered := make([]api.ProcessEntry, 0, len(processes))
	for _, p := range processes {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
