package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
	"github.com/dmitrijs2005/vitalsync/internal/server/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PrefsPath = ":memory:"
	cfg.LatencyScale = 0
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestApp_RunResolvesAndStops(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	phase, err := app.session.WaitResolved(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseUnauthenticated, phase)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}

func TestApp_StopsWhenServerFails(t *testing.T) {
	cfg := testConfig()
	cfg.GRPCAddr = "127.0.0.1:99999"

	app, err := NewApp(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after the gRPC listener failed")
	}
}

func TestNewApp_BadPrefsPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	cfg := testConfig()
	cfg.PrefsPath = filepath.Join(file, "prefs.db")

	_, err := NewApp(context.Background(), cfg, logging.Nop())
	require.Error(t, err)
}
