package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalsync/internal/client/config"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.PrefsPath = filepath.Join(t.TempDir(), "prefs.db")
	c.LatencyScale = 0
	return c
}

func runApp(t *testing.T, c *config.Config, lines ...string) string {
	t.Helper()
	captureOutput(t)
	stubTerminal(t, false, nil)

	var out bytes.Buffer
	app, err := NewApp(context.Background(), c, logging.Nop(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestApp_LoginFlow(t *testing.T) {
	out := runApp(t, testConfig(t),
		"login",
		"demo@example.com",
		"password",
		"connect device-2",
		"metric steps",
		"profile",
		"logout",
		"exit",
	)

	assert.Contains(t, out, "Log in or register to continue")
	assert.Contains(t, out, "[*] Welcome back!: You've successfully logged in.")
	assert.Contains(t, out, "Welcome back, Demo")
	assert.Contains(t, out, "Devices (2 connected)")
	assert.Contains(t, out, "[*] Device connected: Successfully connected to Apple Watch Series 7.")
	assert.Contains(t, out, "username: demouser")
	assert.Contains(t, out, "[*] Logged out")
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	c := testConfig(t)
	runApp(t, c, "login", "demo@example.com", "password", "exit")

	out := runApp(t, c, "devices", "exit")
	assert.NotContains(t, out, "Log in or register")
	assert.Contains(t, out, "Welcome back, Demo")
	assert.Contains(t, out, "Devices (1 connected)")
}

func TestApp_BadLoginAndUnknownPage(t *testing.T) {
	out := runApp(t, testConfig(t),
		"login",
		"demo@example.com",
		"wrong",
		"go /settings",
		"dashboard",
		"exit",
	)

	assert.Contains(t, out, "[!] Authentication failed: invalid credentials")
	assert.Contains(t, out, "404: no page at /settings")
	assert.NotContains(t, out, "Welcome back, Demo")
}

func TestApp_RegisterThenEditProfile(t *testing.T) {
	out := runApp(t, testConfig(t),
		"register",
		"alice",
		"alice@example.com",
		"pw",
		"edit",
		"Alice Liddell",
		"",
		"",
		"exit",
	)

	assert.Contains(t, out, "[*] Account created!")
	assert.Contains(t, out, "Welcome back, alice")
	assert.Contains(t, out, "[*] Profile updated")
	assert.Contains(t, out, "Alice Liddell")
}

type diagSession struct {
	session.Manager
	diags chan session.Diagnostic
}

func (d diagSession) Diagnostics() <-chan session.Diagnostic { return d.diags }

func TestWatchDiagnostics_QueuesToast(t *testing.T) {
	var out bytes.Buffer
	diags := make(chan session.Diagnostic, 1)
	a := &App{session: diagSession{diags: diags}, toasts: notify.NewBuffer(0), out: &out}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.watchDiagnostics(ctx)
		close(done)
	}()

	diags <- session.Diagnostic{Op: "bootstrap", Err: errors.New("disk gone")}
	require.Eventually(t, func() bool { return a.toasts.Len() == 1 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Empty(t, out.String())
	a.flush()
	assert.Equal(t, "[!] Warning: bootstrap failed: disk gone\n", out.String())
}
