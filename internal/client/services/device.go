package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/vitalsync/internal/client/api"
	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/client/notify"
	"github.com/dmitrijs2005/vitalsync/internal/logging"
)

// DeviceService owns the client's copy of the device list. Connect and
// disconnect replace the matching entry in place.
type DeviceService interface {
	List(ctx context.Context) ([]models.Device, error)
	Refresh(ctx context.Context) ([]models.Device, error)
	Connect(ctx context.Context, id string) (models.Device, error)
	Disconnect(ctx context.Context, id string) error
	Devices() []models.Device
}

type deviceService struct {
	api    api.Client
	notify notify.Notifier
	log    logging.Logger

	mu      sync.RWMutex
	devices []models.Device
}

func NewDeviceService(c api.Client, n notify.Notifier, logger logging.Logger) DeviceService {
	return &deviceService{api: c, notify: n, log: logger.With("module", "device_service")}
}

func (s *deviceService) fetch(ctx context.Context) ([]models.Device, error) {
	list, err := s.api.GetConnectedDevices(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.devices = slices.Clone(list)
	s.mu.Unlock()
	return list, nil
}

func (s *deviceService) List(ctx context.Context) ([]models.Device, error) {
	list, err := s.fetch(ctx)
	if err != nil {
		s.log.Error(ctx, "error fetching devices", "error", err)
		s.notify.Notify(notify.Error("Could not load devices", "There was an error loading your connected devices."))
		return nil, err
	}
	return list, nil
}

func (s *deviceService) Refresh(ctx context.Context) ([]models.Device, error) {
	list, err := s.fetch(ctx)
	if err != nil {
		s.log.Error(ctx, "error refreshing devices", "error", err)
		s.notify.Notify(notify.Error("Refresh failed", "Could not refresh your devices. Please try again."))
		return nil, err
	}
	s.notify.Notify(notify.Info("Devices refreshed", "Your device list has been updated."))
	return list, nil
}

func (s *deviceService) Connect(ctx context.Context, id string) (models.Device, error) {
	d, err := s.api.ConnectToDevice(ctx, id)
	if err != nil {
		s.log.Error(ctx, "error connecting to device", "device_id", id, "error", err)
		s.notify.Notify(notify.Error("Connection failed", "Could not connect to the device. Please try again."))
		return models.Device{}, err
	}

	s.mu.Lock()
	s.devices = models.ReplaceDevice(s.devices, d)
	s.mu.Unlock()

	s.notify.Notify(notify.Info("Device connected", fmt.Sprintf("Successfully connected to %s.", d.Name)))
	return d, nil
}

func (s *deviceService) Disconnect(ctx context.Context, id string) error {
	if err := s.api.DisconnectDevice(ctx, id); err != nil {
		s.log.Error(ctx, "error disconnecting device", "device_id", id, "error", err)
		s.notify.Notify(notify.Error("Disconnection failed", "Could not disconnect from the device. Please try again."))
		return err
	}

	s.mu.Lock()
	if i := slices.IndexFunc(s.devices, func(d models.Device) bool { return d.ID == id }); i >= 0 {
		d := s.devices[i]
		d.Connected = false
		s.devices = models.ReplaceDevice(s.devices, d)
	}
	s.mu.Unlock()

	s.notify.Notify(notify.Info("Device disconnected", "Successfully disconnected from the device."))
	return nil
}

func (s *deviceService) Devices() []models.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.devices)
}
