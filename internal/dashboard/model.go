package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

// Options configures the dashboard.
type Options struct {
	// Interval between system info polls. Zero uses config.DefaultPollInterval.
	Interval time.Duration

	// RequestTimeout bounds each backend call. Zero leaves it to the client.
	RequestTimeout time.Duration

	ConfirmKill           bool
	FetchProcessesOnStart bool
	Thresholds            config.ThresholdsConfig

	// Source describes where the data comes from, for the header.
	Source string

	Logger logger.Logger
}

// OptionsFromConfig maps a loaded config onto dashboard options.
func OptionsFromConfig(cfg *config.Config, source string) Options {
	return Options{
		Interval:              cfg.PollInterval,
		RequestTimeout:        cfg.RequestTimeout,
		ConfirmKill:           cfg.ConfirmKill,
		FetchProcessesOnStart: cfg.FetchProcessesOnStart,
		Thresholds:            cfg.Thresholds,
		Source:                source,
	}
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	backend api.Backend
	opts    Options
	log     logger.Logger

	state      ViewState
	lastUpdate time.Time
	stopped    bool
	quitting   bool

	selected    int
	pendingKill *api.ProcessEntry
	showHelp    bool
	width       int
	height      int

	filter  textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// tickMsg drives the system info poll.
type tickMsg time.Time

// refreshProcessesMsg asks Update to start a process fetch.
type refreshProcessesMsg struct{}

type systemInfoMsg struct {
	info *api.SystemInfo
	err  error
}

type processesMsg struct {
	procs []api.ProcessEntry
	err   error
}

type killMsg struct {
	pid int
	err error
}

// NewModel creates a dashboard reading from backend.
func NewModel(backend api.Backend, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = config.DefaultPollInterval
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter by name"
	filter.PromptStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	filter.CharLimit = 64

	spin := spinner.New(
		spinner.WithSpinner(ui.SpinnerFrames),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorGraph)),
	)

	return Model{
		backend: backend,
		opts:    opts,
		log:     log,
		state:   ViewState{Processes: []api.ProcessEntry{}},
		filter:  filter,
		spinner: spin,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

// Init starts the poll with an immediate tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return tickMsg(time.Now()) },
		m.spinner.Tick,
	}
	if m.opts.FetchProcessesOnStart {
		cmds = append(cmds, func() tea.Msg { return refreshProcessesMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if m.stopped {
			return m, nil
		}
		fetch := m.FetchSystemInfo()
		return m, tea.Batch(fetch, m.tickCmd())

	case refreshProcessesMsg:
		cmd := m.FetchProcesses()
		return m, cmd

	case systemInfoMsg:
		m.state.Loading = false
		if msg.err != nil {
			m.log.Debug("system info fetch failed: %v", msg.err)
			m.state.Err = errors.Operation(errors.ErrFetchSystemInfo, msg.err)
			return m, nil
		}
		m.state.SystemInfo = msg.info
		m.state.Err = nil
		m.lastUpdate = time.Now()

	case processesMsg:
		m.state.Loading = false
		if msg.err != nil {
			m.log.Debug("process fetch failed: %v", msg.err)
			m.state.Err = errors.Operation(errors.ErrFetchProcesses, msg.err)
			return m, nil
		}
		if msg.procs == nil {
			msg.procs = []api.ProcessEntry{}
		}
		m.state.Processes = msg.procs
		m.state.Err = nil
		m.clampSelection()

	case killMsg:
		m.state.Loading = false
		if msg.err != nil {
			m.log.Debug("kill %d failed: %v", msg.pid, msg.err)
			m.state.Err = errors.Operation(errors.ErrKillProcess, msg.err)
			return m, nil
		}
		m.log.Debug("killed %d, refreshing processes", msg.pid)
		cmd := m.FetchProcesses()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// FetchSystemInfo marks the state loading and returns the command that fetches
// the system snapshot.
func (m *Model) FetchSystemInfo() tea.Cmd {
	m.begin()
	backend, timeout := m.backend, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		info, err := backend.SystemInfo(ctx)
		return systemInfoMsg{info: info, err: err}
	}
}

// FetchProcesses marks the state loading and returns the command that fetches
// the process list.
func (m *Model) FetchProcesses() tea.Cmd {
	m.begin()
	backend, timeout := m.backend, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		procs, err := backend.Processes(ctx)
		return processesMsg{procs: procs, err: err}
	}
}

// KillProcess marks the state loading and returns the command that asks the
// backend to terminate pid. A successful kill is followed by one process fetch.
func (m *Model) KillProcess(pid int) tea.Cmd {
	m.begin()
	backend, timeout := m.backend, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return killMsg{pid: pid, err: backend.KillProcess(ctx, pid)}
	}
}

// Teardown stops the poll. Requests already in flight still report back.
func (m *Model) Teardown() {
	m.stopped = true
}

// Stopped reports whether Teardown has been called.
func (m Model) Stopped() bool {
	return m.stopped
}

// State returns a copy of the current view state.
func (m Model) State() ViewState {
	return m.state.clone()
}

// Filtered returns the process list narrowed by the current filter query.
func (m Model) Filtered() []api.ProcessEntry {
	return FilterProcesses(m.state.Processes, m.state.FilterQuery)
}

// SelectedProcess returns the highlighted row of the filtered list.
func (m Model) SelectedProcess() (api.ProcessEntry, bool) {
	filtered := m.Filtered()
	if m.selected < 0 || m.selected >= len(filtered) {
		return api.ProcessEntry{}, false
	}
	return filtered[m.selected], true
}

// SetFilter replaces the filter query, as if it had been typed.
func (m *Model) SetFilter(query string) {
	m.filter.SetValue(query)
	m.setFilterQuery(query)
}

// SecondsSinceUpdate returns how many seconds have passed since the last system info update.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

func (m *Model) begin() {
	m.state.Loading = true
	m.state.Err = nil
}

func (m *Model) setFilterQuery(query string) {
	m.state.FilterQuery = query
	m.clampSelection()
}

// clampSelection keeps the cursor inside the filtered list.
func (m *Model) clampSelection() {
	n := len(m.Filtered())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}
