package api

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
)

func initialDevices(now time.Time) []models.Device {
	battery := func(v int) *int { return &v }
	at := func(t time.Time) *time.Time { return &t }

	return []models.Device{
		{
			ID:           "device-1",
			Name:         "Fitbit Charge 5",
			Type:         "Fitness Tracker",
			Connected:    true,
			BatteryLevel: battery(78),
			LastSync:     at(now.Add(-30 * time.Minute)),
		},
		{
			ID:           "device-2",
			Name:         "Apple Watch Series 7",
			Type:         "Smartwatch",
			Connected:    false,
			BatteryLevel: battery(45),
			LastSync:     at(now.Add(-24 * time.Hour)),
		},
	}
}

func (m *MockClient) findDevice(id string) (models.Device, bool) {
	i := slices.IndexFunc(m.devices, func(d models.Device) bool { return d.ID == id })
	if i < 0 {
		return models.Device{}, false
	}
	return m.devices[i], true
}

// GetConnectedDevices returns the paired device list. The list itself never
// changes; callers track connection state on their own copy.
func (m *MockClient) GetConnectedDevices(ctx context.Context) ([]models.Device, error) {
	if err := m.request(ctx, "get devices", latencyDevices); err != nil {
		return nil, err
	}
	return slices.Clone(m.devices), nil
}

// ConnectToDevice returns a copy of the device marked connected and synced
// now.
func (m *MockClient) ConnectToDevice(ctx context.Context, id string) (models.Device, error) {
	d, ok := m.findDevice(id)
	if !ok {
		return models.Device{}, ErrDeviceNotFound
	}
	if err := m.request(ctx, "connect device", latencyConnect); err != nil {
		return models.Device{}, err
	}

	synced := m.now()
	d.Connected = true
	d.LastSync = &synced
	return d, nil
}

func (m *MockClient) DisconnectDevice(ctx context.Context, id string) error {
	if _, ok := m.findDevice(id); !ok {
		return ErrDeviceNotFound
	}
	return m.request(ctx, "disconnect device", latencyDisconnect)
}
