package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	flushes  int
	err      error
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Go(_ context.Context, p string) error          { return f.record("go " + p) }
func (f *fakeExec) Refresh(context.Context) error                 { return f.record("refresh") }
func (f *fakeExec) Connect(_ context.Context, id string) error    { return f.record("connect " + id) }
func (f *fakeExec) Disconnect(_ context.Context, id string) error { return f.record("disconnect " + id) }
func (f *fakeExec) SetPeriod(_ context.Context, p string) error   { return f.record("period " + p) }
func (f *fakeExec) SetMetric(_ context.Context, m string) error   { return f.record("metric " + m) }
func (f *fakeExec) EditProfile(context.Context) error             { return f.record("edit") }
func (f *fakeExec) flush()                                        { f.flushes++ }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)
	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"dashboard",
		"go /metrics",
		"period week",
		"metric steps",
		"connect device-2",
		"disconnect device-1",
		"refresh",
		"edit",
		"profile",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "(guest)" }, rdr(input))

	assert.Equal(t, []string{
		"login", "go /dashboard", "go /metrics", "period week", "metric steps",
		"connect device-2", "disconnect device-1", "refresh", "edit", "go /profile", "logout",
	}, f.calls)
	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, helpMember)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
	assert.Equal(t, 14, f.flushes)
}

func TestRunREPL_UsageAndErrors(t *testing.T) {
	out := captureOutput(t)
	f := &fakeExec{err: errors.New("nope")}

	runREPL(context.Background(), f, func() string { return "" }, rdr("go\nconnect\nperiod\nrefresh"))

	assert.Equal(t, []string{"refresh"}, f.calls)
	assert.Contains(t, *out, "Usage: go <path>")
	assert.Contains(t, *out, "Usage: connect <device id>")
	assert.Contains(t, *out, "Usage: period <value>")
	assert.Contains(t, *out, "error: nope")
}
