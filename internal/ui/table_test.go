package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSimpleTable(t *testing.T) {
	out := RenderSimpleTable([]TableColumn{
		{Title: "KEY", Width: 6},
		{Title: "VALUE", Width: 8},
	}, [][]string{
		{"cpu", "23.5"},
		{"disk", "40.0"},
	})

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "cpu")
	assert.Contains(t, out, "40.0")
}

func TestRenderSimpleTable_Empty(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "A", Width: 3}}, nil))
}

func TestRenderProcessTable(t *testing.T) {
	out := RenderProcessTable([]ProcessRow{
		{PID: 1234, Name: "chrome.exe", MemoryMB: 512.3},
		{PID: 99, Name: "notepad.exe", MemoryMB: 3},
	}, 20)

	for _, want := range []string{"PID", "NAME", "MEMORY", "1234", "chrome.exe", "512.3 MB", "notepad.exe", "3 MB"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "chrome.exe"), strings.Index(out, "notepad.exe"), "input order is kept")
}

func TestRenderProcessTable_MemoryAsReceived(t *testing.T) {
	out := RenderProcessTable([]ProcessRow{{PID: 7, Name: "tiny", MemoryMB: 0.04}}, 20)
	assert.Contains(t, out, "0.04 MB")
}

func TestRenderProcessTable_Empty(t *testing.T) {
	assert.Equal(t, "No processes", RenderProcessTable(nil, 20))
}
