package cli

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLogging_DiscardsWithoutDebug(t *testing.T) {
	t.Setenv(logger.DebugEnvVar, "")
	prev := log.Writer()
	path := filepath.Join(t.TempDir(), debugLogFile)

	restore, err := dashboardLogging(path)
	require.NoError(t, err)

	assert.Equal(t, io.Discard, log.Writer())
	assert.NoFileExists(t, path)

	restore()
	assert.Equal(t, prev, log.Writer())
}

func TestDashboardLogging_WritesFileWithDebug(t *testing.T) {
	t.Setenv(logger.DebugEnvVar, "1")
	prevPrefix := log.Prefix()
	path := filepath.Join(t.TempDir(), debugLogFile)

	restore, err := dashboardLogging(path)
	require.NoError(t, err)

	logger.For("dashboard").Debug("kill %d failed: %s", 42, "denied")
	restore()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[dashboard] kill 42 failed: denied")
	assert.Equal(t, prevPrefix, log.Prefix())
}

func TestDashboardLogging_UnwritablePath(t *testing.T) {
	t.Setenv(logger.DebugEnvVar, "1")
	prev := log.Writer()

	_, err := dashboardLogging(filepath.Join(t.TempDir(), "missing", "dir", debugLogFile))

	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Equal(t, prev, log.Writer())
}

func TestConnect_UsesDefaultLogger(t *testing.T) {
	buf := logger.NewBufferLogger()
	prev := logger.Default()
	t.Cleanup(func() { logger.SetDefault(prev) })
	logger.SetDefault(buf)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"cpu_percent":1,"memory_percent":2,"disk_percent":3,"process_count":4}`)
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = srv.URL
	s, err := connect(cfg, "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, runStatus(context.Background(), &bytes.Buffer{}, s.client, cfg, s.source(), true))

	require.True(t, buf.HasLevel("debug"))
	assert.Contains(t, buf.Messages[0].Message, "GET /system-info -> 200")
}
