// Package formatters turns readings, numbers and times into the strings and
// series the views display.
package formatters

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

const (
	dateLayout     = "Jan 2, 2006"
	timeLayout     = "03:04 PM"
	dateTimeLayout = "Jan 2, 03:04 PM"
)

func FormatDate(t time.Time) string     { return t.Format(dateLayout) }
func FormatTime(t time.Time) string     { return t.Format(timeLayout) }
func FormatDateTime(t time.Time) string { return t.Format(dateTimeLayout) }

// FormatNumber groups thousands: 7500 → "7,500".
func FormatNumber(v float64) string {
	return humanize.Commaf(v)
}

// FormatTimeSince describes how long before now t happened, e.g.
// "30 minutes ago". Months are 30 days.
func FormatTimeSince(t, now time.Time) string {
	secs := int(now.Sub(t) / time.Second)
	if secs < 60 {
		return plural(secs, "second")
	}
	mins := secs / 60
	if mins < 60 {
		return plural(mins, "minute")
	}
	hours := mins / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 30 {
		return plural(days, "day")
	}
	return plural(days/30, "month")
}

func plural(n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// LatestMetric returns the reading with the newest timestamp, or nil for an
// empty slice. Ties keep the earlier element.
func LatestMetric(metrics []models.HealthMetric) *models.HealthMetric {
	if len(metrics) == 0 {
		return nil
	}
	latest := metrics[0]
	for _, m := range metrics[1:] {
		if m.Timestamp.After(latest.Timestamp) {
			latest = m
		}
	}
	return &latest
}

// FormatMetricValue renders value and unit without a separator ("72bpm"),
// or "N/A" when there is no reading.
func FormatMetricValue(m *models.HealthMetric) string {
	if m == nil {
		return "N/A"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64) + m.Unit
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// MetricTrend compares the newest reading with the count-th newest. Fewer
// than count readings (or count < 2) is stable.
func MetricTrend(metrics []models.HealthMetric, count int) Trend {
	if count < 2 || len(metrics) < count {
		return TrendStable
	}
	sorted := sortedBy(metrics, func(a, b models.HealthMetric) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	newest, oldest := sorted[0].Value, sorted[count-1].Value
	switch {
	case newest > oldest:
		return TrendUp
	case newest < oldest:
		return TrendDown
	}
	return TrendStable
}

// ChartPoint is one sample of a chart series.
type ChartPoint struct {
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// PrepareChartData orders readings oldest first and labels them with the
// time of day for PeriodDay and the date otherwise.
func PrepareChartData(metrics []models.HealthMetric, period models.Period) []ChartPoint {
	if len(metrics) == 0 {
		return nil
	}
	label := FormatDate
	if period == models.PeriodDay {
		label = FormatTime
	}

	sorted := sortedBy(metrics, func(a, b models.HealthMetric) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	out := make([]ChartPoint, len(sorted))
	for i, m := range sorted {
		out[i] = ChartPoint{Label: label(m.Timestamp), Value: m.Value, Timestamp: m.Timestamp}
	}
	return out
}

func sortedBy(metrics []models.HealthMetric, cmp func(a, b models.HealthMetric) int) []models.HealthMetric {
	out := slices.Clone(metrics)
	slices.SortStableFunc(out, cmp)
	return out
}
