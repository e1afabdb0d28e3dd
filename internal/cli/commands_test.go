package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus_Text(t *testing.T) {
	pinTerminal(t, false, false)
	backend := sampleBackend()

	var out bytes.Buffer
	err := runStatus(context.Background(), &out, backend, config.DefaultConfig(), "localhost:8000", false)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "System (localhost:8000)")
	assert.Contains(t, output, "CPU")
	assert.Contains(t, output, " 23.5%")
	assert.Contains(t, output, " 61.2%")
	assert.Contains(t, output, " 97%")
	assert.Contains(t, output, "Procs   187")
	assert.Equal(t, 1, backend.SystemInfoCalls())
}

func TestRunStatus_JSON(t *testing.T) {
	backend := sampleBackend()

	var out bytes.Buffer
	require.NoError(t, runStatus(context.Background(), &out, backend, config.DefaultConfig(), "", true))

	var env struct {
		Success bool            `json:"success"`
		Data    api.SystemInfo  `json:"data"`
		Error   json.RawMessage `json:"error"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 187, env.Data.ProcessCount)
	assert.Equal(t, 97.0, env.Data.DiskPercent)
}

func TestRunStatus_Failure(t *testing.T) {
	pinTerminal(t, false, false)
	backend := sampleBackend()
	cause := stderrors.New("connection refused")
	backend.FailSystemInfo(cause)

	var out bytes.Buffer
	err := runStatus(context.Background(), &out, backend, config.DefaultConfig(), "", false)
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.ErrFetchSystemInfo))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), errors.MsgFetchSystemInfo)
	assert.Contains(t, err.Error(), config.DefaultAPIURL)
	assert.Empty(t, out.String())
}

func TestRunPS_AllInBackendOrder(t *testing.T) {
	pinTerminal(t, false, false)

	var out bytes.Buffer
	require.NoError(t, runPS(context.Background(), &out, sampleBackend(), config.DefaultConfig(), "", false))

	output := out.String()
	chrome := strings.Index(output, "chrome.exe")
	notepad := strings.Index(output, "notepad.exe")
	chromium := strings.Index(output, "Chromium")
	require.True(t, chrome >= 0 && notepad >= 0 && chromium >= 0)
	assert.Less(t, chrome, notepad)
	assert.Less(t, notepad, chromium)
	assert.Contains(t, output, "3 processes")
}

func TestRunPS_FilterIgnoresCase(t *testing.T) {
	pinTerminal(t, false, false)

	var out bytes.Buffer
	require.NoError(t, runPS(context.Background(), &out, sampleBackend(), config.DefaultConfig(), "CHROM", false))

	output := out.String()
	assert.Contains(t, output, "chrome.exe")
	assert.Contains(t, output, "Chromium")
	assert.NotContains(t, output, "notepad.exe")
	assert.Contains(t, output, "2 of 3 processes")
}

func TestRunPS_NoMatch(t *testing.T) {
	pinTerminal(t, false, false)

	var out bytes.Buffer
	require.NoError(t, runPS(context.Background(), &out, sampleBackend(), config.DefaultConfig(), "zzz", false))

	assert.Contains(t, out.String(), `No processes match "zzz"`)
}

func TestRunPS_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPS(context.Background(), &out, sampleBackend(), config.DefaultConfig(), "note", true))

	var env struct {
		Success bool     `json:"success"`
		Data    PSOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "note", env.Data.Query)
	assert.Equal(t, 3, env.Data.Total)
	assert.Equal(t, []api.ProcessEntry{{PID: 5678, Name: "notepad.exe", Memory: 3}}, env.Data.Processes)
}

func TestRunPS_Failure(t *testing.T) {
	backend := sampleBackend()
	backend.FailProcesses(stderrors.New("502"))

	err := runPS(context.Background(), &bytes.Buffer{}, backend, config.DefaultConfig(), "", true)
	assert.True(t, errors.IsCode(err, errors.ErrFetchProcesses))
}

func TestParsePID(t *testing.T) {
	pid, err := parsePID("4242")
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	for _, bad := range []string{"abc", "0", "-3", "12x"} {
		_, err := parsePID(bad)
		assert.True(t, errors.IsCode(err, errors.ErrConfig), "expected config error for %q", bad)
	}
}

func TestRunKill_Yes(t *testing.T) {
	pinTerminal(t, false, false)
	backend := sampleBackend()

	var out bytes.Buffer
	require.NoError(t, runKill(context.Background(), &out, backend, config.DefaultConfig(), 1234, killOptions{yes: true}))

	assert.Equal(t, []int{1234}, backend.KillCalls())
	assert.Contains(t, out.String(), "Killed process 1234")
}

func TestRunKill_RefusesWithoutTTY(t *testing.T) {
	pinTerminal(t, false, false)
	backend := sampleBackend()

	err := runKill(context.Background(), &bytes.Buffer{}, backend, config.DefaultConfig(), 1234, killOptions{})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "--yes")
	assert.Empty(t, backend.KillCalls())
}

func TestRunKill_JSONNeedsYes(t *testing.T) {
	pinTerminal(t, true, false)
	backend := sampleBackend()

	err := runKill(context.Background(), &bytes.Buffer{}, backend, config.DefaultConfig(), 1234, killOptions{jsonOut: true})
	assert.Error(t, err)
	assert.Empty(t, backend.KillCalls())
}

func TestRunKill_Confirmation(t *testing.T) {
	tests := []struct {
		name      string
		answer    bool
		wantCalls []int
		wantOut   string
	}{
		{name: "confirmed", answer: true, wantCalls: []int{1234}, wantOut: "Killed process 1234"},
		{name: "cancelled", answer: false, wantCalls: nil, wantOut: "Cancelled."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinTerminal(t, true, false)
			orig := confirmKill
			t.Cleanup(func() { confirmKill = orig })

			var asked int
			confirmKill = func(pid int) (bool, error) {
				asked = pid
				return tt.answer, nil
			}

			backend := sampleBackend()
			var out bytes.Buffer
			require.NoError(t, runKill(context.Background(), &out, backend, config.DefaultConfig(), 1234, killOptions{}))

			assert.Equal(t, 1234, asked)
			assert.Equal(t, tt.wantCalls, backend.KillCalls())
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestRunKill_PromptError(t *testing.T) {
	pinTerminal(t, true, false)
	orig := confirmKill
	t.Cleanup(func() { confirmKill = orig })
	confirmKill = func(int) (bool, error) { return false, stderrors.New("interrupted") }

	backend := sampleBackend()
	err := runKill(context.Background(), &bytes.Buffer{}, backend, config.DefaultConfig(), 1, killOptions{})

	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Empty(t, backend.KillCalls())
}

func TestRunKill_Failure(t *testing.T) {
	pinTerminal(t, false, false)
	backend := sampleBackend()
	backend.FailKill(&api.StatusError{Method: "POST", Path: api.PathKillProcess, StatusCode: 403})

	var out bytes.Buffer
	err := runKill(context.Background(), &out, backend, config.DefaultConfig(), 1234, killOptions{yes: true})
	require.Error(t, err)

	assert.True(t, errors.IsCode(err, errors.ErrKillProcess))
	assert.Contains(t, err.Error(), errors.MsgKillProcess)
	assert.Equal(t, ErrCodeKillProcess, ErrorToJSON(err).Code)
	assert.Empty(t, out.String())
}

func TestWithBackendHint(t *testing.T) {
	cfg := config.DefaultConfig()
	err := withBackendHint(errors.Operation(errors.ErrFetchProcesses, nil), cfg)
	assert.Contains(t, err.Suggestion, cfg.APIURL)

	cfg.SSH.Host = "prod-box"
	err = withBackendHint(errors.Operation(errors.ErrFetchProcesses, nil), cfg)
	assert.Contains(t, err.Suggestion, "prod-box")
}

func TestFormatError(t *testing.T) {
	structured := errors.New(errors.ErrConfig, "bad interval", "use 2s")
	assert.Equal(t, structured.Error(), formatError(structured))

	plain := formatError(stderrors.New(`unknown command "foo" for "sysdash"`))
	assert.True(t, strings.HasPrefix(plain, "✗ unknown command"))
	assert.Contains(t, plain, "sysdash --help")
}
