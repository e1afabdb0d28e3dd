package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the dashboard's key bindings.
type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Up      key.Binding
	Down    key.Binding
	First   key.Binding
	Last    key.Binding
	Kill    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh processes")),
		Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
		Kill:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "kill selected")),
		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
		Back:    key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.Filter, k.Kill, k.Help}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.Refresh, k.Filter, k.Kill, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return true, m.quit()
	}

	// The filter input swallows everything except the keys that leave it.
	if m.filter.Focused() {
		if key.Matches(msg, m.keys.Back) {
			m.filter.Blur()
			return true, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.setFilterQuery(m.filter.Value())
		return true, cmd
	}

	if m.pendingKill != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			pid := m.pendingKill.PID
			m.pendingKill = nil
			return true, m.KillProcess(pid)
		case key.Matches(msg, m.keys.Cancel):
			m.pendingKill = nil
			return true, nil
		}
		return true, nil
	}

	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && msg.Type == tea.KeyEsc {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m.quit()

	case key.Matches(msg, m.keys.Refresh):
		return true, m.FetchProcesses()

	case key.Matches(msg, m.keys.Filter):
		return true, m.filter.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.Filtered())-1 {
			m.selected++
		}
		return true, nil

	case key.Matches(msg, m.keys.First):
		m.selected = 0
		return true, nil

	case key.Matches(msg, m.keys.Last):
		if n := len(m.Filtered()); n > 0 {
			m.selected = n - 1
		}
		return true, nil

	case key.Matches(msg, m.keys.Kill):
		return true, m.requestKill()

	case msg.Type == tea.KeyEsc && m.state.FilterQuery != "":
		m.filter.SetValue("")
		m.setFilterQuery("")
		return true, nil
	}

	return false, nil
}

// requestKill kills the selected process, asking first when confirmation is on.
func (m *Model) requestKill() tea.Cmd {
	proc, ok := m.SelectedProcess()
	if !ok {
		return nil
	}
	if m.opts.ConfirmKill {
		m.pendingKill = &proc
		return nil
	}
	return m.KillProcess(proc.PID)
}

func (m *Model) quit() tea.Cmd {
	m.Teardown()
	m.quitting = true
	return tea.Quit
}
