package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
)

// getSimpleText and getPassword are indirections for tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// maxRedirects bounds how many redirects Go follows for one navigation.
const maxRedirects = 3

// Go navigates to path, following redirects, and renders where it lands.
func (a *App) Go(ctx context.Context, path string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	for range maxRedirects + 1 {
		d := a.router.Navigate(ctx, path)
		switch d.Kind {
		case router.KindRedirect:
			if d.From != "" {
				a.loginFor = d.From
			}
			path = d.Location
			continue

		case router.KindNotFound:
			a.route = ""
			fmt.Fprintf(a.out, "404: no page at %s\n", path)
			return nil

		case router.KindLoading:
			fmt.Fprintln(a.out, "Loading...")
			return ctx.Err()

		case router.KindRender:
			a.route = d.Route
			if d.Route == router.RouteLogin {
				fmt.Fprintln(a.out, "Log in or register to continue (try demo@example.com / password).")
				return nil
			}
			return a.render(ctx, d.Route, a.opts)
		}
	}
	return fmt.Errorf("too many redirects navigating to %s", path)
}

func (a *App) render(ctx context.Context, r router.Route, opts views.Options) error {
	v, err := a.views.Build(ctx, r, opts)
	if err != nil {
		return err
	}
	renderView(a.out, v)
	return nil
}

// afterAuth lands on the page that sent the user to login, or the dashboard.
func (a *App) afterAuth(ctx context.Context) error {
	target := string(router.RouteDashboard)
	if a.loginFor != "" {
		target, a.loginFor = a.loginFor, ""
	}
	return a.Go(ctx, target)
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	cctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if _, err := a.auth.Login(cctx, email, password); err != nil {
		return nil
	}
	return a.afterAuth(ctx)
}

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	cctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if _, err := a.auth.Register(cctx, username, email, password); err != nil {
		return nil
	}
	return a.afterAuth(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	cctx, cancel := a.withTimeout(ctx)
	defer cancel()
	_ = a.auth.Logout(cctx)
	a.route = ""
	return a.Go(ctx, string(router.RouteLogin))
}

// Refresh reloads the current page; on the devices page it uses the
// refresh action so the user gets a confirmation.
func (a *App) Refresh(ctx context.Context) error {
	if a.route == router.RouteDevices {
		cctx, cancel := a.withTimeout(ctx)
		defer cancel()
		if _, err := a.devices.Refresh(cctx); err != nil {
			return nil
		}
		return a.render(ctx, router.RouteDevices, a.cached())
	}
	if a.route == "" {
		return a.Go(ctx, string(router.RouteRoot))
	}
	return a.Go(ctx, string(a.route))
}

func (a *App) cached() views.Options {
	o := a.opts
	o.Cached = true
	return o
}

func (a *App) Connect(ctx context.Context, id string) error {
	return a.deviceAction(ctx, func(ctx context.Context) error {
		_, err := a.devices.Connect(ctx, id)
		return err
	})
}

func (a *App) Disconnect(ctx context.Context, id string) error {
	return a.deviceAction(ctx, func(ctx context.Context) error {
		return a.devices.Disconnect(ctx, id)
	})
}

// deviceAction runs fn when the devices page is reachable and re-renders
// the list from the updated local copy.
func (a *App) deviceAction(ctx context.Context, fn func(context.Context) error) error {
	if a.router.Peek(string(router.RouteDevices)).Kind != router.KindRender {
		return a.Go(ctx, string(router.RouteDevices))
	}
	if len(a.devices.Devices()) == 0 {
		cctx, cancel := a.withTimeout(ctx)
		_, err := a.devices.List(cctx)
		cancel()
		if err != nil {
			return nil
		}
	}

	cctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if err := fn(cctx); err != nil {
		return nil
	}
	a.route = router.RouteDevices
	return a.render(ctx, router.RouteDevices, a.cached())
}

func (a *App) SetPeriod(ctx context.Context, period string) error {
	p, err := models.ParsePeriod(period)
	if err != nil {
		return err
	}
	a.opts.Period = p
	return a.rerender(ctx)
}

func (a *App) SetMetric(ctx context.Context, metric string) error {
	m, err := models.ParseMetricType(metric)
	if err != nil {
		return err
	}
	a.opts.Metric = m
	return a.rerender(ctx)
}

// rerender redraws a chart page from already loaded data.
func (a *App) rerender(ctx context.Context) error {
	switch a.route {
	case router.RouteDashboard, router.RouteMetrics:
		return a.render(ctx, a.route, a.cached())
	}
	return nil
}

// EditProfile prompts for each editable field; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.Go(ctx, string(router.RouteProfile))
	}

	var patch models.UserPatch
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name (empty keeps current)", &patch.Name},
		{"Email (empty keeps current)", &patch.Email},
		{"Avatar URL (empty keeps current)", &patch.Avatar},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	cctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if _, err := a.profile.Update(cctx, patch); err != nil {
		return nil
	}
	a.route = router.RouteProfile
	return a.render(ctx, router.RouteProfile, a.cached())
}
