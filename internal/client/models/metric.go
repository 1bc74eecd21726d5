package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownMetricType = errors.New("unknown metric type")
	ErrUnknownPeriod     = errors.New("unknown period")
)

// MetricType is the closed set of biometric kinds. Every switch over it
// lists all five cases.
type MetricType int

const (
	MetricHeartRate MetricType = iota + 1
	MetricSteps
	MetricSleep
	MetricCalories
	MetricOxygen
)

// MetricTypes lists every kind in display order.
var MetricTypes = []MetricType{MetricHeartRate, MetricSteps, MetricSleep, MetricCalories, MetricOxygen}

func (t MetricType) String() string {
	switch t {
	case MetricHeartRate:
		return "heart_rate"
	case MetricSteps:
		return "steps"
	case MetricSleep:
		return "sleep"
	case MetricCalories:
		return "calories"
	case MetricOxygen:
		return "oxygen"
	}
	return fmt.Sprintf("MetricType(%d)", int(t))
}

// Unit is the measurement unit reported for the kind.
func (t MetricType) Unit() string {
	switch t {
	case MetricHeartRate:
		return "bpm"
	case MetricSteps:
		return "steps"
	case MetricSleep:
		return "hours"
	case MetricCalories:
		return "kcal"
	case MetricOxygen:
		return "%"
	}
	return ""
}

// Label is the human-readable title.
func (t MetricType) Label() string {
	switch t {
	case MetricHeartRate:
		return "Heart Rate"
	case MetricSteps:
		return "Steps"
	case MetricSleep:
		return "Sleep"
	case MetricCalories:
		return "Calories"
	case MetricOxygen:
		return "Blood Oxygen"
	}
	return ""
}

func (t MetricType) Valid() bool {
	return t >= MetricHeartRate && t <= MetricOxygen
}

// ParseMetricType maps the wire name ("heart_rate", ...) to a MetricType.
func ParseMetricType(s string) (MetricType, error) {
	for _, t := range MetricTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetricType, s)
}

func (t MetricType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetricType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *MetricType) UnmarshalText(b []byte) error {
	parsed, err := ParseMetricType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HealthMetric is a single fabricated reading. Values are never mutated
// after generation.
type HealthMetric struct {
	ID        string     `json:"id"`
	Type      MetricType `json:"type"`
	Value     float64    `json:"value"`
	Unit      string     `json:"unit"`
	Timestamp time.Time  `json:"timestamp"`
	DeviceID  string     `json:"deviceId,omitempty"`
}

// HealthData groups readings by kind.
type HealthData map[MetricType][]HealthMetric

// Period selects the chart window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Window is how far back the period reaches.
func (p Period) Window() time.Duration {
	switch p {
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
