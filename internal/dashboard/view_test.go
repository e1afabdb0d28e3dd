package dashboard

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysdash/internal/api"
	apitesting "github.com/rileyhilliard/sysdash/internal/api/testing"
	"github.com/stretchr/testify/assert"
)

func TestView_BeforeFirstUpdate(t *testing.T) {
	m := newTestModel(apitesting.NewFakeBackend(&sampleInfo, nil), testOptions())

	out := m.View()
	assert.Contains(t, out, "sysdash")
	assert.Contains(t, out, "localhost:8000")
	assert.Contains(t, out, "waiting for data")
	assert.Contains(t, out, "Waiting for first update...")
	assert.Contains(t, out, "No processes loaded. Press r to refresh.")
}

func TestView_SystemMetrics(t *testing.T) {
	fake := apitesting.NewFakeBackend(&sampleInfo, nil)
	m := newTestModel(fake, testOptions())
	m = resolve(t, m, m.FetchSystemInfo())

	out := m.View()
	assert.Contains(t, out, "187 processes")
	assert.Contains(t, out, " 23.5%")
	assert.Contains(t, out, " 61.2%")
	assert.Contains(t, out, " 40%")
	assert.Contains(t, out, "updated just now")
	assert.NotContains(t, out, "✗")
}

func TestView_ErrorBannerShowsFixedMessage(t *testing.T) {
	fake := apitesting.NewFakeBackend(&sampleInfo, sampleProcs)
	fake.FailKill(stderrors.New("operation not permitted"))
	m := newTestModel(fake, testOptions())

	m = resolve(t, m, m.KillProcess(999))

	out := m.View()
	assert.Contains(t, out, "✗ Failed to kill process")
	assert.NotContains(t, out, "operation not permitted")
}

func TestView_ProcessRows(t *testing.T) {
	m, _ := loadedModel(t, testOptions())

	out := m.View()
	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "chrome.exe")
	assert.Contains(t, out, "notepad.exe")
	assert.Contains(t, out, "512 MB")
	assert.Contains(t, out, "▸ 1 ")
}

func TestView_ValuesShownAsReceived(t *testing.T) {
	info := api.SystemInfo{CPUPercent: 23.45, MemoryPercent: 61.249, DiskPercent: 0.5, ProcessCount: 3}
	fake := apitesting.NewFakeBackend(&info, []api.ProcessEntry{
		{PID: 7, Name: "tiny", Memory: 0.04},
		{PID: 8, Name: "big", Memory: 1536.125},
	})
	m := newTestModel(fake, testOptions())
	m = resolve(t, m, m.FetchSystemInfo())
	m = resolve(t, m, m.FetchProcesses())

	out := m.View()
	assert.Contains(t, out, "23.45%")
	assert.Contains(t, out, "61.249%")
	assert.Contains(t, out, "0.5%")
	assert.Contains(t, out, "0.04 MB")
	assert.Contains(t, out, "1536.125 MB")
	assert.NotContains(t, out, "23.4%")
	assert.NotContains(t, out, "0.0 MB")
}

func TestView_Filtered(t *testing.T) {
	m, _ := loadedModel(t, testOptions())
	m.SetFilter("chro")

	out := m.View()
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "chrome.exe")
	assert.NotContains(t, out, "notepad.exe")

	m.SetFilter("zzz")
	assert.Contains(t, m.View(), `No processes match "zzz"`)
}

func TestView_ScrollsToSelection(t *testing.T) {
	procs := make([]api.ProcessEntry, 50)
	for i := range procs {
		procs[i] = api.ProcessEntry{PID: 1000 + i, Name: fmt.Sprintf("worker-%02d", i), Memory: 1}
	}
	fake := apitesting.NewFakeBackend(&sampleInfo, procs)
	m := newTestModel(fake, testOptions())
	m = resolve(t, m, m.FetchProcesses())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 25})

	out := m.View()
	assert.Contains(t, out, "worker-00")
	assert.NotContains(t, out, "worker-49")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	out = m.View()
	assert.Contains(t, out, "worker-49")
	assert.NotContains(t, out, "worker-00")
}

func TestView_LoadingSpinner(t *testing.T) {
	m := newTestModel(apitesting.NewFakeBackend(&sampleInfo, nil), testOptions())
	idle := m.renderHeader()

	_ = m.FetchSystemInfo()
	busy := m.renderHeader()

	assert.True(t, strings.HasPrefix(busy, idle))
	assert.Greater(t, len(busy), len(idle))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}

func TestVisibleRange(t *testing.T) {
	m := Model{}
	start, end := m.visibleRange(100)
	assert.Equal(t, 0, start)
	assert.Equal(t, 100, end, "unknown height shows everything")

	m.height = chromeLines + 10
	m.selected = 50
	start, end = m.visibleRange(100)
	assert.Equal(t, 10, end-start)
	assert.True(t, start <= 50 && 50 < end)

	m.selected = 99
	start, end = m.visibleRange(100)
	assert.Equal(t, 100, end)
	assert.Equal(t, 90, start)
}
