package machine

import (
	"context"
	"errors"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"gorm.io/gorm"
)

type (
	MachineRepository interface {
		WithTx(tx *gorm.DB) MachineRepository

		Create(ctx context.Context, m *entities.Machine) error
		GetByID(ctx context.Context, id uint) (*entities.Machine, error)
		GetByCode(ctx context.Context, code string) (*entities.Machine, error)
		List(ctx context.Context, status string) ([]entities.Machine, error)
		Update(ctx context.Context, m *entities.Machine) error
	}

	machineRepository struct {
		db *gorm.DB
	}
)

func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) WithTx(tx *gorm.DB) MachineRepository {
	return &machineRepository{db: tx}
}

func (r *machineRepository) Create(ctx context.Context, m *entities.Machine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *machineRepository) GetByID(ctx context.Context, id uint) (*entities.Machine, error) {
	var m entities.Machine
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *machineRepository) GetByCode(ctx context.Context, code string) (*entities.Machine, error) {
	var m entities.Machine
	if err := r.db.WithContext(ctx).First(&m, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *machineRepository) List(ctx context.Context, status string) ([]entities.Machine, error) {
	var machines []entities.Machine
	query := r.db.WithContext(ctx).Order("code")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func (r *machineRepository) Update(ctx context.Context, m *entities.Machine) error {
	return r.db.WithContext(ctx).Save(m).Error
}
