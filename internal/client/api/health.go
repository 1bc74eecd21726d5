package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

// series describes how readings of one kind are fabricated.
type series struct {
	prefix string
	count  int
	step   time.Duration
	lo, n  int
}

func seriesFor(t models.MetricType) series {
	switch t {
	case models.MetricHeartRate:
		return series{prefix: "hr", count: 24, step: time.Hour, lo: 60, n: 30}
	case models.MetricSteps:
		return series{prefix: "steps", count: 7, step: 24 * time.Hour, lo: 3000, n: 5000}
	case models.MetricSleep:
		return series{prefix: "sleep", count: 7, step: 24 * time.Hour, lo: 5, n: 3}
	case models.MetricCalories:
		return series{prefix: "cal", count: 7, step: 24 * time.Hour, lo: 1500, n: 500}
	case models.MetricOxygen:
		return series{prefix: "ox", count: 24, step: time.Hour, lo: 96, n: 3}
	}
	return series{}
}

// generate fabricates fresh readings of kind t, newest first.
func (m *MockClient) generate(t models.MetricType, now time.Time) []models.HealthMetric {
	s := seriesFor(t)
	out := make([]models.HealthMetric, s.count)
	for i := range out {
		out[i] = models.HealthMetric{
			ID:        fmt.Sprintf("%s-%d", s.prefix, i),
			Type:      t,
			Value:     float64(m.intn(s.lo, s.n)),
			Unit:      t.Unit(),
			Timestamp: now.Add(-time.Duration(i) * s.step),
		}
	}
	return out
}

// GetHealthMetrics returns readings of kind t that fall inside the period
// window.
func (m *MockClient) GetHealthMetrics(ctx context.Context, t models.MetricType, p models.Period) ([]models.HealthMetric, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownMetricType, int(t))
	}
	if err := m.request(ctx, "get metrics", latencyMetrics); err != nil {
		return nil, err
	}

	now := m.now()
	cutoff := now.Add(-p.Window())
	all := m.generate(t, now)
	out := all[:0]
	for _, hm := range all {
		if hm.Timestamp.After(cutoff) {
			out = append(out, hm)
		}
	}
	return out, nil
}

func (m *MockClient) GetAllHealthData(ctx context.Context) (models.HealthData, error) {
	if err := m.request(ctx, "get all health data", latencyAllData); err != nil {
		return nil, err
	}

	now := m.now()
	data := make(models.HealthData, len(models.MetricTypes))
	for _, t := range models.MetricTypes {
		data[t] = m.generate(t, now)
	}
	return data, nil
}
