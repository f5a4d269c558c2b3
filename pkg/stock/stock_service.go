package stock

import (
	"context"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
)

type (
	// StockService is the read-only query surface over the ledger plus the
	// catalog administration that does not touch quantities.
	StockService interface {
		CreateIngredientType(ctx context.Context, req domain.CreateIngredientTypeRequest, actor domain.Actor) (domain.StockStatusResponse, error)
		UpdateIngredientType(ctx context.Context, id uint, req domain.UpdateIngredientTypeRequest, actor domain.Actor) error
		Summary(ctx context.Context) (domain.StockSummaryResponse, error)
		Status(ctx context.Context, ingredientTypeID uint) (domain.StockStatusResponse, error)
	}

	stockService struct {
		stockRepository StockRepository
	}
)

func NewStockService(stockRepository StockRepository) StockService {
	return &stockService{stockRepository: stockRepository}
}

func (s *stockService) CreateIngredientType(ctx context.Context, req domain.CreateIngredientTypeRequest, actor domain.Actor) (domain.StockStatusResponse, error) {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.StockStatusResponse{}, domain.ErrUserNotAllowed
	}

	t := &entities.IngredientType{
		Name:        req.Name,
		Category:    req.Category,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
		ReorderAt:   req.ReorderAt,
		MaxStock:    req.MaxStock,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.stockRepository.CreateIngredientType(ctx, t); err != nil {
		return domain.StockStatusResponse{}, err
	}
	return s.Status(ctx, t.ID)
}

func (s *stockService) UpdateIngredientType(ctx context.Context, id uint, req domain.UpdateIngredientTypeRequest, actor domain.Actor) error {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.ErrUserNotAllowed
	}

	t, err := s.stockRepository.GetIngredientType(ctx, id)
	if err != nil {
		return err
	}
	if req.MinStock != nil {
		t.MinStock = *req.MinStock
	}
	if req.ReorderAt != nil {
		t.ReorderAt = *req.ReorderAt
	}
	if req.MaxStock != nil {
		t.MaxStock = *req.MaxStock
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IsActive != nil {
		// Soft deactivation only; types stay referenced by history.
		t.IsActive = *req.IsActive
	}
	return s.stockRepository.UpdateIngredientType(ctx, t)
}

func (s *stockService) Summary(ctx context.Context) (domain.StockSummaryResponse, error) {
	entries, err := s.stockRepository.ListEntries(ctx)
	if err != nil {
		return domain.StockSummaryResponse{}, err
	}

	res := domain.StockSummaryResponse{
		Entries: make([]domain.StockStatusResponse, 0, len(entries)),
	}
	for i := range entries {
		status := toStatusResponse(&entries[i])
		switch entries[i].Level() {
		case entities.StockLevelCritical:
			res.CriticalCount++
		case entities.StockLevelLow:
			res.LowCount++
		}
		res.Entries = append(res.Entries, status)
	}
	res.TotalTypes = len(entries)
	return res, nil
}

func (s *stockService) Status(ctx context.Context, ingredientTypeID uint) (domain.StockStatusResponse, error) {
	entry, err := s.stockRepository.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return domain.StockStatusResponse{}, err
	}
	return toStatusResponse(entry), nil
}

func toStatusResponse(entry *entities.StockEntry) domain.StockStatusResponse {
	res := domain.StockStatusResponse{
		IngredientTypeID: entry.IngredientTypeID,
		Quantity:         entry.Quantity,
		Reserved:         entry.Reserved,
		Available:        entry.Available(),
		Level:            string(entry.Level()),
		LastRestockAt:    entry.LastRestockAt,
		LastRestockQty:   entry.LastRestockQty,
	}
	if entry.IngredientType != nil {
		res.Name = entry.IngredientType.Name
		res.Category = entry.IngredientType.Category
		res.Unit = entry.IngredientType.Unit
	}
	return res
}
