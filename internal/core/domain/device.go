package domain

import "time"

// DeviceStatus is the server status vocabulary shared with the backend.
type DeviceStatus string

const (
	StatusOnline      DeviceStatus = "online"
	StatusOffline     DeviceStatus = "offline"
	StatusMaintenance DeviceStatus = "maintenance"
	StatusUnknown     DeviceStatus = "unknown"
)

// ParseDeviceStatus maps arbitrary backend status strings into the known
// vocabulary, defaulting to unknown.
func ParseDeviceStatus(s string) DeviceStatus {
	switch DeviceStatus(s) {
	case StatusOnline, StatusOffline, StatusMaintenance, StatusUnknown:
		return DeviceStatus(s)
	default:
		return StatusUnknown
	}
}

// Device is the console-side view of a managed server.
type Device struct {
	ID         string
	Hostname   string
	IPAddress  string
	Status     DeviceStatus
	OS         string
	CPU        string
	Memory     string
	LastUpdate time.Time
}

// DeviceInput carries create/update fields for a server.
type DeviceInput struct {
	Hostname  string
	IPAddress string
	OS        string
	CPU       string
	Memory    string
	Status    DeviceStatus
}
