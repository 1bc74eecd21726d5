package models

import "time"

// Device is a paired (or pairable) wearable. The client replaces entries in
// its list on connect/disconnect; nothing is persisted.
type Device struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Connected    bool       `json:"connected"`
	BatteryLevel *int       `json:"batteryLevel,omitempty"`
	LastSync     *time.Time `json:"lastSync,omitempty"`
}

// ReplaceDevice returns a copy of list with the entry whose ID matches d.ID
// replaced by d. The input slice is not modified.
func ReplaceDevice(list []Device, d Device) []Device {
	out := make([]Device, len(list))
	for i, cur := range list {
		if cur.ID == d.ID {
			out[i] = d
			continue
		}
		out[i] = cur
	}
	return out
}

// CountConnected returns how many devices in list are connected.
func CountConnected(list []Device) int {
	n := 0
	for _, d := range list {
		if d.Connected {
			n++
		}
	}
	return n
}
