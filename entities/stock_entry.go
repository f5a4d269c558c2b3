package entities

import (
	"time"
)

// StockLevel is the coarse health classification of a stock entry.
type StockLevel string

const (
	StockLevelCritical StockLevel = "critical"
	StockLevelLow      StockLevel = "low"
	StockLevelNormal   StockLevel = "normal"
	StockLevelExcess   StockLevel = "excess"
	StockLevelUnknown  StockLevel = "unknown"
)

// StockEntry holds the warehouse quantity for one ingredient type (1:1).
// It is mutated only through the stock ledger operations; Version backs the
// optimistic concurrency check on those mutations.
type StockEntry struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	IngredientTypeID uint    `gorm:"uniqueIndex;not null" json:"ingredient_type_id"`
	Quantity         float64 `gorm:"not null;default:0" json:"quantity"`
	Reserved         float64 `gorm:"not null;default:0" json:"reserved"`
	Version          int64   `gorm:"not null;default:0" json:"-"`

	LastRestockAt  *time.Time `json:"last_restock_at,omitempty"`
	LastRestockQty *float64   `json:"last_restock_qty,omitempty"`

	IngredientType *IngredientType `gorm:"foreignKey:IngredientTypeID" json:"ingredient_type,omitempty"`

	Timestamp
}

// Available is the quantity eligible for new reservations.
func (e *StockEntry) Available() float64 {
	if e.Quantity <= e.Reserved {
		return 0
	}
	return e.Quantity - e.Reserved
}

// Level classifies the quantity against the ingredient type thresholds.
// Checks run min -> reorder -> max, so coinciding thresholds resolve
// critical > low > excess > normal.
func (e *StockEntry) Level() StockLevel {
	if e.IngredientType == nil {
		return StockLevelUnknown
	}
	switch {
	case e.Quantity <= e.IngredientType.MinStock:
		return StockLevelCritical
	case e.Quantity <= e.IngredientType.ReorderAt:
		return StockLevelLow
	case e.Quantity >= e.IngredientType.MaxStock:
		return StockLevelExcess
	default:
		return StockLevelNormal
	}
}
