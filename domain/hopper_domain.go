package domain

import (
	"time"
)

var (
	MessageSuccessCreateHopper  = "hopper created successfully"
	MessageSuccessGetHopper     = "hopper retrieved successfully"
	MessageSuccessFillHopper    = "hopper filled successfully"
	MessageSuccessInstallHopper = "hopper installed successfully"
	MessageSuccessRemoveHopper  = "hopper removed successfully"
	MessageSuccessCleanHopper   = "hopper cleaned successfully"
	MessageSuccessIssueHopper   = "hopper issued successfully"
	MessageSuccessReturnHopper  = "hopper returned successfully"

	MessageFailedCreateHopper  = "failed to create hopper"
	MessageFailedGetHopper     = "failed to retrieve hopper"
	MessageFailedFillHopper    = "failed to fill hopper"
	MessageFailedInstallHopper = "failed to install hopper"
	MessageFailedRemoveHopper  = "failed to remove hopper"
	MessageFailedCleanHopper   = "failed to clean hopper"
	MessageFailedIssueHopper   = "failed to issue hopper"
	MessageFailedReturnHopper  = "failed to return hopper"
)

type (
	CreateHopperRequest struct {
		Code        string  `json:"code" validate:"required,max=50"`
		WeightEmpty float64 `json:"weight_empty" validate:"gte=0"`
	}

	FillHopperRequest struct {
		HopperID         uint         `json:"hopper_id" validate:"required"`
		IngredientTypeID uint         `json:"ingredient_type_id" validate:"required"`
		WeightEmpty      float64      `json:"weight_empty" validate:"gte=0"`
		WeightFull       float64      `json:"weight_full" validate:"required,gt=0"`
		Photos           []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	InstallHopperRequest struct {
		HopperID  uint         `json:"hopper_id" validate:"required"`
		MachineID uint         `json:"machine_id" validate:"required"`
		Photos    []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	RemoveHopperRequest struct {
		HopperID      uint         `json:"hopper_id" validate:"required"`
		CurrentWeight float64      `json:"current_weight" validate:"gte=0"`
		Photos        []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	IssueHopperRequest struct {
		HopperID   uint `json:"hopper_id" validate:"required"`
		OperatorID uint `json:"operator_id" validate:"required"`
	}

	ReturnHopperRequest struct {
		HopperID uint `json:"hopper_id" validate:"required"`
	}

	HopperResponse struct {
		ID                 uint       `json:"id"`
		Code               string     `json:"code"`
		Status             string     `json:"status"`
		IngredientTypeID   *uint      `json:"ingredient_type_id,omitempty"`
		IngredientName     string     `json:"ingredient_name,omitempty"`
		WeightEmpty        float64    `json:"weight_empty"`
		WeightFull         *float64   `json:"weight_full,omitempty"`
		CurrentWeight      *float64   `json:"current_weight,omitempty"`
		FillPercentage     float64    `json:"fill_percentage"`
		NeedsRefill        bool       `json:"needs_refill"`
		MachineID          *uint      `json:"machine_id,omitempty"`
		AssignedOperatorID *uint      `json:"assigned_operator_id,omitempty"`
		LastFilledAt       *time.Time `json:"last_filled_at,omitempty"`
		LastCleanedAt      *time.Time `json:"last_cleaned_at,omitempty"`
	}
)
