package domain

import (
	"time"
)

var (
	MessageSuccessCreateIngredient = "ingredient type created successfully"
	MessageSuccessUpdateIngredient = "ingredient type updated successfully"
	MessageSuccessGetStock         = "stock retrieved successfully"
	MessageSuccessReceiveStock     = "stock received successfully"
	MessageSuccessAdjustStock      = "stock adjusted successfully"

	MessageFailedCreateIngredient = "failed to create ingredient type"
	MessageFailedUpdateIngredient = "failed to update ingredient type"
	MessageFailedGetStock         = "failed to retrieve stock"
	MessageFailedReceiveStock     = "failed to receive stock"
	MessageFailedAdjustStock      = "failed to adjust stock"
)

type (
	CreateIngredientTypeRequest struct {
		Name        string  `json:"name" validate:"required,max=255"`
		Category    string  `json:"category" validate:"required,max=100"`
		Unit        string  `json:"unit" validate:"required,max=20"`
		MinStock    float64 `json:"min_stock" validate:"gte=0"`
		ReorderAt   float64 `json:"reorder" validate:"gte=0"`
		MaxStock    float64 `json:"max_stock" validate:"gte=0"`
		Description string  `json:"description" validate:"max=500"`
	}

	UpdateIngredientTypeRequest struct {
		MinStock    *float64 `json:"min_stock" validate:"omitempty,gte=0"`
		ReorderAt   *float64 `json:"reorder" validate:"omitempty,gte=0"`
		MaxStock    *float64 `json:"max_stock" validate:"omitempty,gte=0"`
		Description *string  `json:"description" validate:"omitempty,max=500"`
		IsActive    *bool    `json:"is_active"`
	}

	ReceiveStockRequest struct {
		IngredientTypeID uint         `json:"ingredient_type_id" validate:"required"`
		Quantity         float64      `json:"quantity" validate:"required,gt=0"`
		Photos           []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	AdjustInventoryRequest struct {
		IngredientTypeID uint         `json:"ingredient_type_id" validate:"required"`
		CountedQuantity  float64      `json:"counted_quantity" validate:"gte=0"`
		Reason           string       `json:"reason" validate:"max=500"`
		Photos           []PhotoInput `json:"photos" validate:"omitempty,dive"`
	}

	StockStatusResponse struct {
		IngredientTypeID uint       `json:"ingredient_type_id"`
		Name             string     `json:"name"`
		Category         string     `json:"category"`
		Unit             string     `json:"unit"`
		Quantity         float64    `json:"quantity"`
		Reserved         float64    `json:"reserved"`
		Available        float64    `json:"available"`
		Level            string     `json:"level"`
		LastRestockAt    *time.Time `json:"last_restock_at,omitempty"`
		LastRestockQty   *float64   `json:"last_restock_qty,omitempty"`
	}

	StockSummaryResponse struct {
		Entries       []StockStatusResponse `json:"entries"`
		TotalTypes    int                   `json:"total_types"`
		CriticalCount int                   `json:"critical_count"`
		LowCount      int                   `json:"low_count"`
	}
)
