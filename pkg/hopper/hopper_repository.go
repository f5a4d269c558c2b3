package hopper

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"gorm.io/gorm"
)

type (
	HopperRepository interface {
		WithTx(tx *gorm.DB) HopperRepository

		Create(ctx context.Context, h *entities.Hopper) error
		GetByID(ctx context.Context, id uint) (*entities.Hopper, error)
		GetByCode(ctx context.Context, code string) (*entities.Hopper, error)
		List(ctx context.Context, status string) ([]entities.Hopper, error)
		CountInstalled(ctx context.Context, machineID uint) (int64, error)
		SaveVersioned(ctx context.Context, h *entities.Hopper) error
	}

	hopperRepository struct {
		db *gorm.DB
	}
)

func NewHopperRepository(db *gorm.DB) HopperRepository {
	return &hopperRepository{db: db}
}

func (r *hopperRepository) WithTx(tx *gorm.DB) HopperRepository {
	return &hopperRepository{db: tx}
}

func (r *hopperRepository) Create(ctx context.Context, h *entities.Hopper) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *hopperRepository) GetByID(ctx context.Context, id uint) (*entities.Hopper, error) {
	var h entities.Hopper
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *hopperRepository) GetByCode(ctx context.Context, code string) (*entities.Hopper, error) {
	var h entities.Hopper
	if err := r.db.WithContext(ctx).First(&h, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *hopperRepository) List(ctx context.Context, status string) ([]entities.Hopper, error) {
	var hoppers []entities.Hopper
	query := r.db.WithContext(ctx).Order("code")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&hoppers).Error; err != nil {
		return nil, err
	}
	return hoppers, nil
}

func (r *hopperRepository) CountInstalled(ctx context.Context, machineID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Hopper{}).
		Where("machine_id = ? AND status = ?", machineID, entities.HopperStatusInstalled).
		Count(&count).Error
	return count, err
}

// SaveVersioned writes all mutable hopper fields guarded by the version
// column. A zero row count means a concurrent transition won the race.
func (r *hopperRepository) SaveVersioned(ctx context.Context, h *entities.Hopper) error {
	current := h.Version
	h.Version++
	res := r.db.WithContext(ctx).
		Model(&entities.Hopper{}).
		Where("id = ? AND version = ?", h.ID, current).
		Updates(map[string]interface{}{
			"status":               h.Status,
			"ingredient_type_id":   h.IngredientTypeID,
			"weight_empty":         h.WeightEmpty,
			"weight_full":          h.WeightFull,
			"current_weight":       h.CurrentWeight,
			"machine_id":           h.MachineID,
			"assigned_operator_id": h.AssignedOperatorID,
			"last_filled_at":       h.LastFilledAt,
			"last_cleaned_at":      h.LastCleanedAt,
			"version":              h.Version,
		})
	if res.Error != nil {
		return fmt.Errorf("update hopper %d: %w", h.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("hopper %d version %d: %w", h.ID, current, domain.ErrContention)
	}
	return nil
}
