package ui

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer for the spinner's animation goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Fetching processes", &syncBuffer{})
	assert.Equal(t, "Fetching processes", s.Label())
	assert.Equal(t, SpinnerPending, s.State())
}

func TestSpinnerStartStop(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Fetching", out)

	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	time.Sleep(2 * SpinnerFrames.FPS)
	s.Stop()

	assert.Equal(t, SpinnerInProgress, s.State())
	assert.Contains(t, out.String(), "Fetching...")
}

func TestSpinnerSuccess(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Fetching", out)

	s.Start()
	s.Success()

	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Contains(t, out.String(), SymbolComplete)
	assert.Contains(t, out.String(), "Fetching ")
}

func TestSpinnerFail(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Killing 42", out)

	s.Start()
	s.Fail()

	assert.Equal(t, SpinnerFailed, s.State())
	assert.Contains(t, out.String(), SymbolFail)
}

func TestSpinnerDoubleStartStop(t *testing.T) {
	s := NewSpinner("Test", &syncBuffer{})

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()

	assert.Equal(t, SpinnerInProgress, s.State())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Millisecond, "0.03s"},
		{300 * time.Millisecond, "0.3s"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
