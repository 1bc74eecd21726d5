// Package views assembles the view model of each protected route from the
// services, the formatters and the session user.
package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/vitalsync/internal/client/formatters"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/router"
	"github.com/dmitrijs2005/vitalsync/internal/client/services"
	"github.com/dmitrijs2005/vitalsync/internal/client/session"
)

// trendWindow is how many of the newest readings a trend compares.
const trendWindow = 2

type MetricCard struct {
	Type  models.MetricType `json:"type"`
	Title string            `json:"title"`
	Value string            `json:"value"`
	Trend formatters.Trend  `json:"trend"`
}

type Dashboard struct {
	Greeting         string                  `json:"greeting"`
	ConnectedDevices int                     `json:"connectedDevices"`
	Cards            []MetricCard            `json:"cards"`
	Selected         models.MetricType       `json:"selected"`
	Period           models.Period           `json:"period"`
	Unit             string                  `json:"unit"`
	Chart            []formatters.ChartPoint `json:"chart"`
}

type DeviceRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Connected bool   `json:"connected"`
	Battery   string `json:"battery"`
	LastSync  string `json:"lastSync"`
}

type Devices struct {
	Connected int         `json:"connected"`
	Devices   []DeviceRow `json:"devices"`
}

type MetricSeries struct {
	Type   models.MetricType       `json:"type"`
	Title  string                  `json:"title"`
	Latest string                  `json:"latest"`
	Trend  formatters.Trend        `json:"trend"`
	Points []formatters.ChartPoint `json:"points"`
}

type Metrics struct {
	Period models.Period     `json:"period"`
	Active models.MetricType `json:"active"`
	Series []MetricSeries    `json:"series"`
}

type Profile struct {
	DisplayName string      `json:"displayName"`
	User        models.User `json:"user"`
}

// Options are the per-screen selections a front end keeps between renders.
type Options struct {
	Period models.Period
	Metric models.MetricType
	// Cached skips the API and builds from what the services already hold.
	Cached bool
}

func (o Options) withDefaults() Options {
	if o.Period == "" {
		o.Period = models.PeriodDay
	}
	if !o.Metric.Valid() {
		o.Metric = models.MetricHeartRate
	}
	return o
}

type Builder struct {
	session session.Manager
	health  services.HealthService
	devices services.DeviceService
	profile services.ProfileService
	now     func() time.Time
}

func NewBuilder(s session.Manager, h services.HealthService, d services.DeviceService, p services.ProfileService) *Builder {
	return &Builder{session: s, health: h, devices: d, profile: p, now: time.Now}
}

// Build returns the view model for route: *Dashboard, *Devices, *Metrics or
// *Profile.
func (b *Builder) Build(ctx context.Context, route router.Route, opts Options) (any, error) {
	opts = opts.withDefaults()
	switch route {
	case router.RouteDashboard:
		return b.Dashboard(ctx, opts)
	case router.RouteDevices:
		return b.Devices(ctx, opts)
	case router.RouteMetrics:
		return b.Metrics(ctx, opts)
	case router.RouteProfile:
		return b.Profile(ctx, opts)
	}
	return nil, fmt.Errorf("no view for route %q", route)
}

// Dashboard loads health data and devices concurrently. Each load runs to
// completion on its own; one failing does not cancel the other.
func (b *Builder) Dashboard(ctx context.Context, opts Options) (*Dashboard, error) {
	opts = opts.withDefaults()
	if !opts.Cached {
		var g errgroup.Group
		g.Go(func() error {
			_, err := b.health.LoadAll(ctx)
			return err
		})
		g.Go(func() error {
			_, err := b.devices.List(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	data := b.health.Data()
	v := &Dashboard{
		Greeting:         greeting(b.session.Snapshot().User),
		ConnectedDevices: models.CountConnected(b.devices.Devices()),
		Selected:         opts.Metric,
		Period:           opts.Period,
		Chart:            formatters.PrepareChartData(data[opts.Metric], opts.Period),
	}
	if latest := formatters.LatestMetric(data[opts.Metric]); latest != nil {
		v.Unit = latest.Unit
	}
	for _, t := range []models.MetricType{models.MetricHeartRate, models.MetricOxygen, models.MetricSteps, models.MetricSleep} {
		v.Cards = append(v.Cards, card(t, data[t]))
	}
	return v, nil
}

func (b *Builder) Devices(ctx context.Context, opts Options) (*Devices, error) {
	if !opts.Cached {
		if _, err := b.devices.List(ctx); err != nil {
			return nil, err
		}
	}
	list := b.devices.Devices()
	now := b.now()

	v := &Devices{Connected: models.CountConnected(list), Devices: make([]DeviceRow, 0, len(list))}
	for _, d := range list {
		row := DeviceRow{ID: d.ID, Name: d.Name, Type: d.Type, Connected: d.Connected, Battery: "N/A", LastSync: "Never"}
		if d.BatteryLevel != nil {
			row.Battery = fmt.Sprintf("%d%%", *d.BatteryLevel)
		}
		if d.LastSync != nil {
			row.LastSync = formatters.FormatTimeSince(*d.LastSync, now)
		}
		v.Devices = append(v.Devices, row)
	}
	return v, nil
}

func (b *Builder) Metrics(ctx context.Context, opts Options) (*Metrics, error) {
	opts = opts.withDefaults()
	if !opts.Cached {
		if _, err := b.health.LoadAll(ctx); err != nil {
			return nil, err
		}
	}
	data := b.health.Data()

	v := &Metrics{Period: opts.Period, Active: opts.Metric}
	for _, t := range models.MetricTypes {
		c := card(t, data[t])
		v.Series = append(v.Series, MetricSeries{
			Type:   t,
			Title:  c.Title,
			Latest: c.Value,
			Trend:  c.Trend,
			Points: formatters.PrepareChartData(data[t], opts.Period),
		})
	}
	return v, nil
}

func (b *Builder) Profile(ctx context.Context, opts Options) (*Profile, error) {
	if !opts.Cached {
		if _, err := b.profile.Fetch(ctx); err != nil {
			return nil, err
		}
	}
	st := b.session.Snapshot()
	if st.User == nil {
		return nil, session.ErrNotAuthenticated
	}
	return &Profile{DisplayName: st.User.DisplayName(), User: *st.User}, nil
}

func card(t models.MetricType, metrics []models.HealthMetric) MetricCard {
	return MetricCard{
		Type:  t,
		Title: t.Label(),
		Value: formatters.FormatMetricValue(formatters.LatestMetric(metrics)),
		Trend: formatters.MetricTrend(metrics, trendWindow),
	}
}

// greeting addresses the user by first name, then username.
func greeting(u *models.User) string {
	if u == nil {
		return "Welcome back, User"
	}
	if f := strings.Fields(u.Name); len(f) > 0 {
		return "Welcome back, " + f[0]
	}
	if u.Username != "" {
		return "Welcome back, " + u.Username
	}
	return "Welcome back, User"
}
