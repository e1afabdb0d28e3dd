// Package testing provides test doubles for the api package.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/sysdash/internal/api"
)

// FakeBackend is an in-memory api.Backend with scriptable failures and call counters.
// A successful kill removes the pid from the process list, like a real backend would.
type FakeBackend struct {
	mu sync.Mutex

	info     *api.SystemInfo
	infoErr  error
	procs    []api.ProcessEntry
	procsErr error
	killErr  error

	systemInfoCalls int
	processesCalls  int
	killCalls       []int
}

var _ api.Backend = (*FakeBackend)(nil)

// NewFakeBackend creates a fake serving the given snapshot and process list.
func NewFakeBackend(info *api.SystemInfo, procs []api.ProcessEntry) *FakeBackend {
	return &FakeBackend{
		info:  info,
		procs: append([]api.ProcessEntry(nil), procs...),
	}
}

// SetSystemInfo replaces the snapshot returned by SystemInfo and clears any scripted failure.
func (f *FakeBackend) SetSystemInfo(info *api.SystemInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.info = info
	f.infoErr = nil
}

// SetProcesses replaces the process list and clears any scripted failure.
func (f *FakeBackend) SetProcesses(procs []api.ProcessEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs = append([]api.ProcessEntry(nil), procs...)
	f.procsErr = nil
}

// FailSystemInfo makes SystemInfo return err until SetSystemInfo is called.
func (f *FakeBackend) FailSystemInfo(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoErr = err
}

// FailProcesses makes Processes return err until SetProcesses is called.
func (f *FakeBackend) FailProcesses(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procsErr = err
}

// FailKill makes KillProcess return err. Pass nil to succeed again.
func (f *FakeBackend) FailKill(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killErr = err
}

// SystemInfo implements api.Backend.
func (f *FakeBackend) SystemInfo(_ context.Context) (*api.SystemInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systemInfoCalls++
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	if f.info == nil {
		return nil, fmt.Errorf("GET %s: backend returned 503", api.PathSystemInfo)
	}
	info := *f.info
	return &info, nil
}

// Processes implements api.Backend.
func (f *FakeBackend) Processes(_ context.Context) ([]api.ProcessEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processesCalls++
	if f.procsErr != nil {
		return nil, f.procsErr
	}
	return append([]api.ProcessEntry{}, f.procs...), nil
}

// KillProcess implements api.Backend.
func (f *FakeBackend) KillProcess(_ context.Context, pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killCalls = append(f.killCalls, pid)
	if f.killErr != nil {
		return f.killErr
	}
	kept := f.procs[:0]
	for _, p := range f.procs {
		if p.PID != pid {
			kept = append(kept, p)
		}
	}
	f.procs = kept
	return nil
}

// SystemInfoCalls returns how many times SystemInfo was called.
func (f *FakeBackend) SystemInfoCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.systemInfoCalls
}

// ProcessesCalls returns how many times Processes was called.
func (f *FakeBackend) ProcessesCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processesCalls
}

// KillCalls returns the pids passed to KillProcess, in call order.
func (f *FakeBackend) KillCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.killCalls...)
}
