package domain

import (
	"time"
)

var (
	MessageSuccessCreateMachine  = "machine created successfully"
	MessageSuccessGetMachines    = "machines retrieved successfully"
	MessageSuccessMachineStatus  = "machine status changed successfully"
	MessageSuccessMachineService = "machine service recorded successfully"
	MessageSuccessAssignOperator = "operator assigned successfully"

	MessageFailedCreateMachine  = "failed to create machine"
	MessageFailedGetMachines    = "failed to retrieve machines"
	MessageFailedMachineStatus  = "failed to change machine status"
	MessageFailedMachineService = "failed to record machine service"
	MessageFailedAssignOperator = "failed to assign operator"
)

type (
	CreateMachineRequest struct {
		Code            string   `json:"code" validate:"required,max=50"`
		Name            string   `json:"name" validate:"required,max=255"`
		LocationAddress string   `json:"location_address" validate:"required,max=500"`
		LocationDetails string   `json:"location_details" validate:"max=500"`
		Latitude        *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
		Longitude       *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	}

	ChangeMachineStatusRequest struct {
		MachineID uint   `json:"machine_id" validate:"required"`
		Status    string `json:"status" validate:"required,oneof=active maintenance broken inactive"`
		Reason    string `json:"reason" validate:"max=500"`
	}

	MarkMachineServiceRequest struct {
		MachineID uint         `json:"machine_id" validate:"required"`
		Notes     string       `json:"notes" validate:"max=1000"`
		Photos    []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	AssignMachineOperatorRequest struct {
		MachineID  uint `json:"machine_id" validate:"required"`
		OperatorID uint `json:"operator_id" validate:"required"`
	}

	MachineResponse struct {
		ID                 uint       `json:"id"`
		Code               string     `json:"code"`
		Name               string     `json:"name"`
		Status             string     `json:"status"`
		Location           string     `json:"location"`
		Latitude           *float64   `json:"latitude,omitempty"`
		Longitude          *float64   `json:"longitude,omitempty"`
		AssignedOperatorID *uint      `json:"assigned_operator_id,omitempty"`
		InstalledHoppers   int        `json:"installed_hoppers"`
		LastServiceAt      *time.Time `json:"last_service_at,omitempty"`
	}
)
