package router

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

// fakeSession starts CHECKING and resolves to result on Bootstrap.
type fakeSession struct {
	phase      models.Phase
	result     models.Phase
	bootstraps atomic.Int32
}

func (f *fakeSession) Phase() models.Phase { return f.phase }

func (f *fakeSession) Bootstrap(context.Context) models.Phase {
	f.bootstraps.Add(1)
	f.phase = f.result
	return f.phase
}

func TestMatch(t *testing.T) {
	cases := map[string]Route{
		"":               RouteRoot,
		"/":              RouteRoot,
		"/login":         RouteLogin,
		"/dashboard/":    RouteDashboard,
		"/devices?x=1":   RouteDevices,
		"/metrics#chart": RouteMetrics,
		"/profile":       RouteProfile,
	}
	for in, want := range cases {
		got, ok := Match(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"/nope", "/dashboard/extra", "/Login"} {
		_, ok := Match(in)
		assert.False(t, ok, in)
	}
}

func TestGuard_Check(t *testing.T) {
	s := &fakeSession{phase: models.PhaseChecking}
	g := NewGuard(s)

	d := g.Check(RouteDevices)
	assert.Equal(t, KindLoading, d.Kind)
	assert.Empty(t, d.Location)

	s.phase = models.PhaseUnauthenticated
	d = g.Check(RouteDevices)
	assert.Equal(t, KindRedirect, d.Kind)
	assert.Equal(t, "/login?from=%2Fdevices", d.Location)
	assert.Equal(t, "/devices", d.From)

	s.phase = models.PhaseAuthenticated
	d = g.Check(RouteDevices)
	assert.Equal(t, Decision{Kind: KindRender, Route: RouteDevices}, d)
	assert.Zero(t, s.bootstraps.Load())
}

func TestGuard_ResolveWaitsForBootstrap(t *testing.T) {
	s := &fakeSession{phase: models.PhaseChecking, result: models.PhaseAuthenticated}
	d := NewGuard(s).Resolve(context.Background(), RouteMetrics)

	assert.Equal(t, KindRender, d.Kind)
	assert.Equal(t, int32(1), s.bootstraps.Load())
}

func TestRouter_Navigate(t *testing.T) {
	cases := []struct {
		name  string
		phase models.Phase
		path  string
		want  Decision
	}{
		{"root", models.PhaseUnauthenticated, "/", Decision{Kind: KindRedirect, Location: "/dashboard"}},
		{"unknown", models.PhaseAuthenticated, "/settings", Decision{Kind: KindNotFound}},
		{"login anonymous", models.PhaseUnauthenticated, "/login", Decision{Kind: KindRender, Route: RouteLogin}},
		{"login signed in", models.PhaseAuthenticated, "/login", Decision{Kind: KindRedirect, Location: "/dashboard"}},
		{"protected anonymous", models.PhaseUnauthenticated, "/profile",
			Decision{Kind: KindRedirect, Location: "/login?from=%2Fprofile", From: "/profile"}},
		{"protected signed in", models.PhaseAuthenticated, "/profile", Decision{Kind: KindRender, Route: RouteProfile}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSession{phase: models.PhaseChecking, result: tc.phase}
			assert.Equal(t, tc.want, New(s).Navigate(context.Background(), tc.path))
		})
	}
}

func TestRouter_PeekNeverBootstraps(t *testing.T) {
	s := &fakeSession{phase: models.PhaseChecking, result: models.PhaseAuthenticated}
	rt := New(s)

	assert.Equal(t, KindLoading, rt.Peek("/dashboard").Kind)
	assert.Equal(t, KindRender, rt.Peek("/login").Kind)
	assert.Equal(t, KindRedirect, rt.Peek("/").Kind)
	assert.Equal(t, KindNotFound, rt.Peek("/x").Kind)
	assert.Zero(t, s.bootstraps.Load())
}

func TestDecision_ExactlyOneOutcome(t *testing.T) {
	for _, p := range []models.Phase{models.PhaseChecking, models.PhaseAuthenticated, models.PhaseUnauthenticated} {
		for _, r := range Protected {
			d := decide(p, r)
			rendered := d.Kind == KindRender
			redirected := d.Location != ""
			assert.False(t, rendered && redirected, "%s %s", p, r)
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "loading", KindLoading.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}
