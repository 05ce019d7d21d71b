package domain

type DeviceStatus string

const (
	DeviceStatusActive      DeviceStatus = "active"
	DeviceStatusInactive    DeviceStatus = "inactive"
	DeviceStatusMaintenance DeviceStatus = "maintenance"
)

// Device identifies the AR glass making a request and the staff member
// it is assigned to. The core only stamps AssignedTo and ID on records;
// validating the device is the transport layer's job.
type Device struct {
	ID              string       `json:"deviceId" gorm:"column:device_id;primaryKey"`
	AssignedTo      string       `json:"assignedTo"`
	DeviceType      string       `json:"deviceType"`
	Status          DeviceStatus `json:"status"`
	BatteryLevel    int          `json:"batteryLevel,omitempty"`
	FirmwareVersion string       `json:"firmwareVersion,omitempty"`
	LastActive      string       `json:"lastActive,omitempty"`
}
