package services

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// HealthService loads readings and keeps the last good copy of each kind.
type HealthService interface {
	LoadAll(ctx context.Context) (models.HealthData, error)
	Load(ctx context.Context, t models.MetricType, p models.Period) ([]models.HealthMetric, error)
	// Data returns the readings loaded so far.
	Data() models.HealthData
}

type healthService struct {
	api    api.Client
	notify notify.Notifier
	log    logging.Logger

	mu   sync.RWMutex
	data models.HealthData
}

func NewHealthService(c api.Client, n notify.Notifier, logger logging.Logger) HealthService {
	return &healthService{
		api:    c,
		notify: n,
		log:    logger.With("module", "health_service"),
		data:   models.HealthData{},
	}
}

func (s *healthService) LoadAll(ctx context.Context) (models.HealthData, error) {
	data, err := s.api.GetAllHealthData(ctx)
	if err != nil {
		s.log.Error(ctx, "error fetching all health data", "error", err)
		s.notify.Notify(notify.Error("Data Fetch Error", "Could not load health data. Please try again."))
		return nil, err
	}

	s.mu.Lock()
	s.data = maps.Clone(data)
	s.mu.Unlock()
	return data, nil
}

func (s *healthService) Load(ctx context.Context, t models.MetricType, p models.Period) ([]models.HealthMetric, error) {
	metrics, err := s.api.GetHealthMetrics(ctx, t, p)
	if err != nil {
		s.log.Error(ctx, "error fetching metrics", "type", t, "period", p, "error", err)
		s.notify.Notify(notify.Error("Data Fetch Error", fmt.Sprintf("Could not load %s data. Please try again.", t)))
		return nil, err
	}

	s.mu.Lock()
	s.data[t] = metrics
	s.mu.Unlock()
	return metrics, nil
}

func (s *healthService) Data() models.HealthData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}
