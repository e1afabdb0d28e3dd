package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/ui"
)

const (
	defaultWidth = 80
	barWidth     = 30
	minListRows  = 3

	// Lines used by everything except the process rows.
	chromeLines = 15
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.state.Err != nil {
		b.WriteString(ErrorBannerStyle.Render("✗ " + m.state.Err.Message))
	}
	b.WriteString("\n")

	b.WriteString(m.renderSystemSection())
	b.WriteString("\n\n")

	b.WriteString(m.renderProcessSection())
	b.WriteString("\n")

	if m.pendingKill != nil {
		b.WriteString(PromptStyle.Render(fmt.Sprintf("Kill %s (pid %d)? y/n", m.pendingKill.Name, m.pendingKill.PID)))
	} else {
		b.WriteString(m.renderFooter())
	}

	return b.String()
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderHeader renders the title, data source and update age.
func (m Model) renderHeader() string {
	var updateText string
	switch {
	case m.lastUpdate.IsZero():
		updateText = "waiting for data"
	case m.SecondsSinceUpdate() == 0:
		updateText = "updated just now"
	default:
		updateText = fmt.Sprintf("updated %ds ago", m.SecondsSinceUpdate())
	}

	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("sysdash")

	parts := []string{}
	if m.opts.Source != "" {
		parts = append(parts, m.opts.Source)
	}
	parts = append(parts, updateText)
	stats := lipgloss.NewStyle().Foreground(ColorTextSecondary).Render(" | " + strings.Join(parts, " | "))

	loading := ""
	if m.state.Loading {
		loading = " " + m.spinner.View()
	}

	return HeaderStyle.Render(title+stats) + loading
}

// renderSystemSection renders the CPU, memory and disk gauges.
func (m Model) renderSystemSection() string {
	width := m.viewWidth()
	info := m.state.SystemInfo

	count := "-"
	if info != nil {
		count = fmt.Sprintf("%d processes", info.ProcessCount)
	}

	lines := []string{SectionHeader("System", count, width)}
	if info == nil {
		lines = append(lines,
			SectionContentLine(LabelStyle.Render("Waiting for first update..."), width),
			SectionContentLine("", width),
			SectionContentLine("", width),
		)
	} else {
		t := m.opts.Thresholds
		lines = append(lines,
			SectionContentLine(gaugeLine("CPU", info.CPUPercent, t.CPU), width),
			SectionContentLine(gaugeLine("Memory", info.MemoryPercent, t.Memory), width),
			SectionContentLine(gaugeLine("Disk", info.DiskPercent, t.Disk), width),
		)
	}
	lines = append(lines, SectionFooter(width))

	return strings.Join(lines, "\n")
}

func gaugeLine(label string, percent float64, t config.ThresholdValues) string {
	value := lipgloss.NewStyle().Foreground(MetricColor(percent, t)).Render(fmt.Sprintf("%6s%%", ui.FormatNumber(percent)))
	return LabelStyle.Render(fmt.Sprintf("%-7s", label)) + " " + ProgressBar(barWidth, percent, t) + " " + value
}

// renderProcessSection renders the filter input and the visible process rows.
func (m Model) renderProcessSection() string {
	width := m.viewWidth()
	filtered := m.Filtered()

	value := fmt.Sprintf("%d", len(m.state.Processes))
	if m.state.FilterQuery != "" {
		value = fmt.Sprintf("%d of %d", len(filtered), len(m.state.Processes))
	}

	lines := []string{SectionHeader("Processes", value, width)}

	if m.filter.Focused() || m.state.FilterQuery != "" {
		lines = append(lines, SectionContentLine(m.filter.View(), width))
	}

	nameWidth := width - 30
	if nameWidth < 8 {
		nameWidth = 8
	}

	switch {
	case len(m.state.Processes) == 0:
		lines = append(lines, SectionContentLine(LabelStyle.Render("No processes loaded. Press r to refresh."), width))
	case len(filtered) == 0:
		lines = append(lines, SectionContentLine(LabelStyle.Render(fmt.Sprintf("No processes match %q", m.state.FilterQuery)), width))
	default:
		header := fmt.Sprintf("  %-8s %-*s %10s", "PID", nameWidth, "NAME", "MEMORY")
		lines = append(lines, SectionContentLine(ColumnHeaderStyle.Render(header), width))

		start, end := m.visibleRange(len(filtered))
		for i := start; i < end; i++ {
			lines = append(lines, SectionContentLine(m.renderRow(filtered[i], nameWidth, i == m.selected), width))
		}
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(p api.ProcessEntry, nameWidth int, selected bool) string {
	row := fmt.Sprintf("%-8d %-*s %10s", p.PID, nameWidth, truncate(p.Name, nameWidth), ui.FormatNumber(p.Memory)+" MB")
	if selected {
		return SelectedRowStyle.Render("▸ " + row)
	}
	return ValueStyle.Render("  " + row)
}

// visibleRange returns the window of rows that fits the terminal and contains the selection.
func (m Model) visibleRange(n int) (int, int) {
	if m.height <= 0 {
		return 0, n
	}

	rows := m.height - chromeLines
	if rows < minListRows {
		rows = minListRows
	}
	if n <= rows {
		return 0, n
	}

	start := m.selected - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 1 {
		return string(r[:limit])
	}
	return string(r[:limit-1]) + "…"
}
