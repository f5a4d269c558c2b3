package entities

type IngredientType struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;unique" json:"name"`
	Category    string  `gorm:"size:100;not null;index" json:"category"`
	Unit        string  `gorm:"size:20;not null;default:kg" json:"unit"` // kg, l, pcs
	MinStock    float64 `gorm:"not null;default:10" json:"min_stock"`
	ReorderAt   float64 `gorm:"not null;default:20" json:"reorder"`
	MaxStock    float64 `gorm:"not null;default:100" json:"max_stock"`
	Description string  `gorm:"size:500" json:"description,omitempty"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`

	Timestamp
}

func (t *IngredientType) DisplayName() string {
	return t.Category + ": " + t.Name
}
