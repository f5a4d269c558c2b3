package hopper

import (
	"context"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/stock"
)

type (
	// HopperService is the read surface plus hopper registration. All
	// status transitions go through the allocation coordinator.
	HopperService interface {
		Create(ctx context.Context, req domain.CreateHopperRequest, actor domain.Actor) (domain.HopperResponse, error)
		GetByCode(ctx context.Context, code string) (domain.HopperResponse, error)
		List(ctx context.Context, status string) ([]domain.HopperResponse, error)
	}

	hopperService struct {
		hopperRepository HopperRepository
		stockRepository  stock.StockRepository
	}
)

func NewHopperService(hopperRepository HopperRepository, stockRepository stock.StockRepository) HopperService {
	return &hopperService{
		hopperRepository: hopperRepository,
		stockRepository:  stockRepository,
	}
}

func (s *hopperService) Create(ctx context.Context, req domain.CreateHopperRequest, actor domain.Actor) (domain.HopperResponse, error) {
	if !actor.Can(domain.CapabilityAdmin, domain.CapabilityWarehouse) {
		return domain.HopperResponse{}, domain.ErrUserNotAllowed
	}

	h := &entities.Hopper{
		Code:        req.Code,
		Status:      entities.HopperStatusEmpty,
		WeightEmpty: req.WeightEmpty,
	}
	if err := s.hopperRepository.Create(ctx, h); err != nil {
		return domain.HopperResponse{}, err
	}
	return s.toResponse(ctx, h), nil
}

func (s *hopperService) GetByCode(ctx context.Context, code string) (domain.HopperResponse, error) {
	h, err := s.hopperRepository.GetByCode(ctx, code)
	if err != nil {
		return domain.HopperResponse{}, err
	}
	return s.toResponse(ctx, h), nil
}

func (s *hopperService) List(ctx context.Context, status string) ([]domain.HopperResponse, error) {
	hoppers, err := s.hopperRepository.List(ctx, status)
	if err != nil {
		return nil, err
	}
	res := make([]domain.HopperResponse, 0, len(hoppers))
	for i := range hoppers {
		res = append(res, s.toResponse(ctx, &hoppers[i]))
	}
	return res, nil
}

func (s *hopperService) toResponse(ctx context.Context, h *entities.Hopper) domain.HopperResponse {
	res := domain.HopperResponse{
		ID:                 h.ID,
		Code:               h.Code,
		Status:             string(h.Status),
		IngredientTypeID:   h.IngredientTypeID,
		WeightEmpty:        h.WeightEmpty,
		WeightFull:         h.WeightFull,
		CurrentWeight:      h.CurrentWeight,
		FillPercentage:     h.FillPercentage(),
		NeedsRefill:        h.NeedsRefill(),
		MachineID:          h.MachineID,
		AssignedOperatorID: h.AssignedOperatorID,
		LastFilledAt:       h.LastFilledAt,
		LastCleanedAt:      h.LastCleanedAt,
	}
	if h.IngredientTypeID != nil {
		if t, err := s.stockRepository.GetIngredientType(ctx, *h.IngredientTypeID); err == nil {
			res.IngredientName = t.Name
		}
	}
	return res
}
