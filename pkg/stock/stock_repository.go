package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"gorm.io/gorm"
)

type (
	// StockRepository owns StockEntry rows. The ledger mutations
	// (Reserve/Release/Consume/Restock/Adjust) run against whatever handle
	// the repository was built with, so a coordinator passes its open
	// transaction via WithTx and keeps the check-then-mutate sequence
	// inside one atomic unit. Movement amounts must be positive;
	// non-positive amounts are rejected with ErrInvalidQuantity.
	StockRepository interface {
		WithTx(tx *gorm.DB) StockRepository

		CreateIngredientType(ctx context.Context, t *entities.IngredientType) error
		GetIngredientType(ctx context.Context, id uint) (*entities.IngredientType, error)
		ListIngredientTypes(ctx context.Context, activeOnly bool) ([]entities.IngredientType, error)
		UpdateIngredientType(ctx context.Context, t *entities.IngredientType) error

		GetEntry(ctx context.Context, ingredientTypeID uint) (*entities.StockEntry, error)
		ListEntries(ctx context.Context) ([]entities.StockEntry, error)

		Reserve(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error)
		Release(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error)
		Consume(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error)
		Restock(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error)
		Adjust(ctx context.Context, ingredientTypeID uint, countedQty float64) (*entities.StockEntry, float64, error)
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) WithTx(tx *gorm.DB) StockRepository {
	return &stockRepository{db: tx}
}

func (r *stockRepository) CreateIngredientType(ctx context.Context, t *entities.IngredientType) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create ingredient type: %w", err)
	}
	// Every catalog entry gets its 1:1 stock row up front.
	entry := entities.StockEntry{IngredientTypeID: t.ID}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

func (r *stockRepository) GetIngredientType(ctx context.Context, id uint) (*entities.IngredientType, error) {
	var t entities.IngredientType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *stockRepository) ListIngredientTypes(ctx context.Context, activeOnly bool) ([]entities.IngredientType, error) {
	var types []entities.IngredientType
	query := r.db.WithContext(ctx).Order("category, name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *stockRepository) UpdateIngredientType(ctx context.Context, t *entities.IngredientType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *stockRepository) GetEntry(ctx context.Context, ingredientTypeID uint) (*entities.StockEntry, error) {
	var entry entities.StockEntry
	err := r.db.WithContext(ctx).
		Preload("IngredientType").
		Where("ingredient_type_id = ?", ingredientTypeID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *stockRepository) ListEntries(ctx context.Context) ([]entities.StockEntry, error) {
	var entries []entities.StockEntry
	err := r.db.WithContext(ctx).
		Preload("IngredientType").
		Joins("JOIN ingredient_types ON ingredient_types.id = stock_entries.ingredient_type_id").
		Order("ingredient_types.category, ingredient_types.name").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *stockRepository) Reserve(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("reserve %.3f of type %d: %w", qty, ingredientTypeID, domain.ErrInvalidQuantity)
	}
	entry, err := r.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return nil, err
	}
	if entry.Available() < qty {
		return nil, fmt.Errorf("reserve %.3f of type %d (available %.3f): %w",
			qty, ingredientTypeID, entry.Available(), domain.ErrInsufficientStock)
	}
	entry.Reserved += qty
	if err := r.saveVersioned(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *stockRepository) Release(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("release %.3f of type %d: %w", qty, ingredientTypeID, domain.ErrInvalidQuantity)
	}
	entry, err := r.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return nil, err
	}
	if qty > entry.Reserved {
		return nil, fmt.Errorf("release %.3f of type %d (reserved %.3f): %w",
			qty, ingredientTypeID, entry.Reserved, domain.ErrInvalidRelease)
	}
	entry.Reserved -= qty
	if err := r.saveVersioned(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Consume decrements quantity and releases any matching reservation pro rata.
func (r *stockRepository) Consume(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("consume %.3f of type %d: %w", qty, ingredientTypeID, domain.ErrInvalidQuantity)
	}
	entry, err := r.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return nil, err
	}
	if qty > entry.Quantity {
		return nil, fmt.Errorf("consume %.3f of type %d (on hand %.3f): %w",
			qty, ingredientTypeID, entry.Quantity, domain.ErrInsufficientStock)
	}
	entry.Quantity -= qty
	if entry.Reserved > 0 {
		released := qty
		if released > entry.Reserved {
			released = entry.Reserved
		}
		entry.Reserved -= released
	}
	if err := r.saveVersioned(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *stockRepository) Restock(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("restock %.3f of type %d: %w", qty, ingredientTypeID, domain.ErrInvalidQuantity)
	}
	entry, err := r.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entry.Quantity += qty
	entry.LastRestockAt = &now
	entry.LastRestockQty = &qty
	if err := r.saveVersioned(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Adjust sets quantity to the physically counted value and returns the delta
// against the previous book quantity. Reserved is clamped so the
// reserved <= quantity invariant survives downward corrections.
func (r *stockRepository) Adjust(ctx context.Context, ingredientTypeID uint, countedQty float64) (*entities.StockEntry, float64, error) {
	entry, err := r.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return nil, 0, err
	}
	delta := countedQty - entry.Quantity
	entry.Quantity = countedQty
	if entry.Reserved > entry.Quantity {
		entry.Reserved = entry.Quantity
	}
	if err := r.saveVersioned(ctx, entry); err != nil {
		return nil, 0, err
	}
	return entry, delta, nil
}

// saveVersioned writes the entry back guarded by its version. A zero row
// count means another transaction got there first.
func (r *stockRepository) saveVersioned(ctx context.Context, entry *entities.StockEntry) error {
	current := entry.Version
	entry.Version++
	res := r.db.WithContext(ctx).
		Model(&entities.StockEntry{}).
		Where("id = ? AND version = ?", entry.ID, current).
		Updates(map[string]interface{}{
			"quantity":         entry.Quantity,
			"reserved":         entry.Reserved,
			"version":          entry.Version,
			"last_restock_at":  entry.LastRestockAt,
			"last_restock_qty": entry.LastRestockQty,
		})
	if res.Error != nil {
		return fmt.Errorf("update stock entry %d: %w", entry.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("stock entry %d version %d: %w", entry.ID, current, domain.ErrContention)
	}
	return nil
}
