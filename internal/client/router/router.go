// Package router maps paths to routes and decides, for each navigation,
// whether to render the view, show the loading placeholder, redirect, or
// report a missing page. Exactly one outcome is produced per decision.
package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

type Route string

const (
	RouteRoot      Route = "/"
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
	RouteDevices   Route = "/devices"
	RouteMetrics   Route = "/metrics"
	RouteProfile   Route = "/profile"
)

// Protected lists the routes that require an authenticated session.
var Protected = []Route{RouteDashboard, RouteDevices, RouteMetrics, RouteProfile}

func (r Route) Protected() bool {
	for _, p := range Protected {
		if p == r {
			return true
		}
	}
	return false
}

type Kind int

const (
	KindRender Kind = iota
	KindLoading
	KindRedirect
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindLoading:
		return "loading"
	case KindRedirect:
		return "redirect"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Decision is the outcome of a navigation. Route is set for Render,
// Location for Redirect. From is the originally requested path on a login
// redirect.
type Decision struct {
	Kind     Kind
	Route    Route
	Location string
	From     string
}

func render(r Route) Decision { return Decision{Kind: KindRender, Route: r} }

func redirect(location string) Decision {
	return Decision{Kind: KindRedirect, Location: location}
}

// LoginRedirect sends an unauthenticated visitor of from to the login page.
func LoginRedirect(from string) Decision {
	return Decision{
		Kind:     KindRedirect,
		Location: string(RouteLogin) + "?from=" + url.QueryEscape(from),
		From:     from,
	}
}

// Session is the part of the session the router needs.
type Session interface {
	Phase() models.Phase
	Bootstrap(ctx context.Context) models.Phase
}

// Guard protects a route behind the session phase.
type Guard struct {
	session Session
}

func NewGuard(s Session) *Guard {
	return &Guard{session: s}
}

// Check decides without waiting: while the session is CHECKING it returns
// the loading placeholder.
func (g *Guard) Check(r Route) Decision {
	return decide(g.session.Phase(), r)
}

// Resolve runs (or joins) the bootstrap check and decides once it is done.
// If ctx ends first, the loading placeholder is returned.
func (g *Guard) Resolve(ctx context.Context, r Route) Decision {
	return decide(g.session.Bootstrap(ctx), r)
}

func decide(p models.Phase, r Route) Decision {
	switch p {
	case models.PhaseAuthenticated:
		return render(r)
	case models.PhaseUnauthenticated:
		return LoginRedirect(string(r))
	default:
		return Decision{Kind: KindLoading, Route: r}
	}
}

// Router resolves paths.
type Router struct {
	session Session
	guard   *Guard
}

func New(s Session) *Router {
	return &Router{session: s, guard: NewGuard(s)}
}

// Match normalizes path (query dropped, trailing slash trimmed) and looks
// it up in the route table.
func Match(path string) (Route, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	r := Route(path)
	if r == RouteRoot || r == RouteLogin || r.Protected() {
		return r, true
	}
	return "", false
}

// Navigate decides where path leads, waiting for the bootstrap check when
// the outcome depends on it.
func (rt *Router) Navigate(ctx context.Context, path string) Decision {
	r, ok := Match(path)
	switch {
	case !ok:
		return Decision{Kind: KindNotFound}
	case r == RouteRoot:
		return redirect(string(RouteDashboard))
	case r == RouteLogin:
		if rt.session.Bootstrap(ctx) == models.PhaseAuthenticated {
			return redirect(string(RouteDashboard))
		}
		return render(RouteLogin)
	}
	return rt.guard.Resolve(ctx, r)
}

// Peek is Navigate without waiting; protected routes yield the loading
// placeholder while the session is CHECKING.
func (rt *Router) Peek(path string) Decision {
	r, ok := Match(path)
	switch {
	case !ok:
		return Decision{Kind: KindNotFound}
	case r == RouteRoot:
		return redirect(string(RouteDashboard))
	case r == RouteLogin:
		if rt.session.Phase() == models.PhaseAuthenticated {
			return redirect(string(RouteDashboard))
		}
		return render(RouteLogin)
	}
	return rt.guard.Check(r)
}
