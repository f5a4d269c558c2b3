package entities

import (
	"time"
)

type MachineStatus string

const (
	MachineStatusActive      MachineStatus = "active"
	MachineStatusMaintenance MachineStatus = "maintenance"
	MachineStatusBroken      MachineStatus = "broken"
	MachineStatusInactive    MachineStatus = "inactive"
)

// MachineHopperCapacity is how many hoppers a vending machine can hold at
// once. Enforced by the allocation coordinator, not the schema.
const MachineHopperCapacity = 4

type Machine struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name string `gorm:"size:255;not null" json:"name"`

	LocationAddress string   `gorm:"size:500;not null" json:"location_address"`
	LocationDetails string   `gorm:"size:500" json:"location_details,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`

	Status             MachineStatus `gorm:"size:20;not null;default:active" json:"status"`
	AssignedOperatorID *uint         `gorm:"index" json:"assigned_operator_id,omitempty"`

	InstalledAt   *time.Time `json:"installed_at,omitempty"`
	LastServiceAt *time.Time `json:"last_service_at,omitempty"`

	Timestamp
}

func (m *Machine) IsOperational() bool {
	return m.Status == MachineStatusActive
}

func (m *Machine) DisplayLocation() string {
	if m.LocationDetails != "" {
		return m.LocationAddress + ", " + m.LocationDetails
	}
	return m.LocationAddress
}
