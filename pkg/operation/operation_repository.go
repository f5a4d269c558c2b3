package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"gorm.io/gorm"
)

type (
	// OperationRepository appends to and reads the operation log. Rows are
	// never updated or deleted; photo evidence rows may be appended later
	// without touching the operation itself.
	OperationRepository interface {
		WithTx(tx *gorm.DB) OperationRepository

		Create(ctx context.Context, op *entities.Operation) error
		GetByID(ctx context.Context, id uint) (*entities.Operation, error)
		List(ctx context.Context, filter domain.HistoryFilter) ([]entities.Operation, error)
		AddPhoto(ctx context.Context, photo *entities.Photo) error
	}

	operationRepository struct {
		db *gorm.DB
	}
)

func NewOperationRepository(db *gorm.DB) OperationRepository {
	return &operationRepository{db: db}
}

func (r *operationRepository) WithTx(tx *gorm.DB) OperationRepository {
	return &operationRepository{db: tx}
}

func (r *operationRepository) Create(ctx context.Context, op *entities.Operation) error {
	if err := r.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("append operation: %w: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}

func (r *operationRepository) GetByID(ctx context.Context, id uint) (*entities.Operation, error) {
	var op entities.Operation
	err := r.db.WithContext(ctx).Preload("Photos").First(&op, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &op, nil
}

// List returns operations most-recent-first. Ordering follows commit order:
// ids are assigned at insert inside the committing transaction.
func (r *operationRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]entities.Operation, error) {
	query := r.db.WithContext(ctx).Preload("Photos").Order("id DESC")

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OperationType != "" {
		query = query.Where("operation_type = ?", filter.OperationType)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != 0 {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var ops []entities.Operation
	if err := query.Limit(limit).Find(&ops).Error; err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *operationRepository) AddPhoto(ctx context.Context, photo *entities.Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return fmt.Errorf("append photo: %w: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}
