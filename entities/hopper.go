package entities

import (
	"time"
)

type HopperStatus string

const (
	HopperStatusEmpty     HopperStatus = "empty"
	HopperStatusFilled    HopperStatus = "filled"
	HopperStatusInstalled HopperStatus = "installed"
	HopperStatusCleaning  HopperStatus = "cleaning"
)

// RefillThresholdPercent is the fill percentage under which a hopper is
// considered due for a refill.
const RefillThresholdPercent = 20.0

// Hopper is a removable ingredient container cycled between the warehouse
// and vending machines. Version backs the optimistic concurrency check on
// state transitions.
type Hopper struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Code   string       `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Status HopperStatus `gorm:"size:20;not null;default:empty;index" json:"status"`

	IngredientTypeID *uint `gorm:"index" json:"ingredient_type_id,omitempty"`

	WeightEmpty   float64  `gorm:"not null;default:0" json:"weight_empty"`
	WeightFull    *float64 `json:"weight_full,omitempty"`
	CurrentWeight *float64 `json:"current_weight,omitempty"`

	MachineID          *uint `gorm:"index" json:"machine_id,omitempty"`
	AssignedOperatorID *uint `gorm:"index" json:"assigned_operator_id,omitempty"`

	LastFilledAt  *time.Time `json:"last_filled_at,omitempty"`
	LastCleanedAt *time.Time `json:"last_cleaned_at,omitempty"`

	Version int64 `gorm:"not null;default:0" json:"-"`

	Timestamp
}

// IngredientWeight is the weight of the contents when the hopper was filled.
func (h *Hopper) IngredientWeight() float64 {
	if h.WeightFull == nil || *h.WeightFull <= h.WeightEmpty {
		return 0
	}
	return *h.WeightFull - h.WeightEmpty
}

// CurrentIngredientWeight is the weight of the contents at the last reading.
func (h *Hopper) CurrentIngredientWeight() float64 {
	if h.CurrentWeight == nil {
		return 0
	}
	if w := *h.CurrentWeight - h.WeightEmpty; w > 0 {
		return w
	}
	return 0
}

func (h *Hopper) FillPercentage() float64 {
	total := h.IngredientWeight()
	if total <= 0 {
		return 0
	}
	return h.CurrentIngredientWeight() / total * 100
}

func (h *Hopper) NeedsRefill() bool {
	return h.FillPercentage() < RefillThresholdPercent
}
