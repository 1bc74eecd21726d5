package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vitalsync/internal/client/formatters"
	"github.com/dmitrijs2005/vitalsync/internal/client/views"
)

func renderView(w io.Writer, v any) {
	switch v := v.(type) {
	case *views.Dashboard:
		renderDashboard(w, v)
	case *views.Devices:
		renderDevices(w, v)
	case *views.Metrics:
		renderMetrics(w, v)
	case *views.Profile:
		renderProfile(w, v)
	default:
		fmt.Fprintf(w, "%+v\n", v)
	}
}

func renderDashboard(w io.Writer, d *views.Dashboard) {
	fmt.Fprintln(w, d.Greeting)
	fmt.Fprintf(w, "Connected devices: %d\n", d.ConnectedDevices)
	fmt.Fprintln(w, "Health metrics:")
	for _, c := range d.Cards {
		fmt.Fprintf(w, "  %-14s %-10s %s\n", c.Title, c.Value, trendMark(c.Trend))
	}
	fmt.Fprintf(w, "%s (%s):\n", d.Selected.Label(), d.Period)
	renderChart(w, d.Chart, d.Unit)
}

func renderDevices(w io.Writer, d *views.Devices) {
	fmt.Fprintf(w, "Devices (%d connected)\n", d.Connected)
	for _, row := range d.Devices {
		state := "disconnected"
		if row.Connected {
			state = "connected"
		}
		fmt.Fprintf(w, "  %-10s %-22s %-16s %-13s battery %-4s synced %s\n",
			row.ID, row.Name, row.Type, state, row.Battery, row.LastSync)
	}
}

func renderMetrics(w io.Writer, m *views.Metrics) {
	fmt.Fprintf(w, "Health metrics (%s)\n", m.Period)
	for _, s := range m.Series {
		marker := " "
		if s.Type == m.Active {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %-14s latest %-10s %s\n", marker, s.Title, s.Latest, trendMark(s.Trend))
		if s.Type == m.Active {
			renderChart(w, s.Points, "")
		}
	}
}

func renderProfile(w io.Writer, p *views.Profile) {
	fmt.Fprintln(w, p.DisplayName)
	fmt.Fprintf(w, "  username: %s\n", p.User.Username)
	fmt.Fprintf(w, "  email:    %s\n", p.User.Email)
	if p.User.Avatar != "" {
		fmt.Fprintf(w, "  avatar:   %s\n", p.User.Avatar)
	}
}

// renderChart draws a horizontal bar per point, scaled to the largest value.
func renderChart(w io.Writer, points []formatters.ChartPoint, unit string) {
	if len(points) == 0 {
		fmt.Fprintln(w, "  no data")
		return
	}
	const width = 30
	peak := 0.0
	for _, p := range points {
		peak = max(peak, p.Value)
	}
	for _, p := range points {
		n := 0
		if peak > 0 {
			n = int(p.Value / peak * width)
		}
		fmt.Fprintf(w, "  %-14s %s %s%s\n", p.Label, strings.Repeat("#", n), formatters.FormatNumber(p.Value), unit)
	}
}

func trendMark(t formatters.Trend) string {
	switch t {
	case formatters.TrendUp:
		return "↑"
	case formatters.TrendDown:
		return "↓"
	}
	return "="
}
