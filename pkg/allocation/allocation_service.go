package allocation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/hopper"
	"github.com/jamshiddins/vendbot/pkg/machine"
	"github.com/jamshiddins/vendbot/pkg/operation"
	"github.com/jamshiddins/vendbot/pkg/stock"
	"gorm.io/gorm"
)

// maxContentionRetries bounds how often a composite operation is replayed
// after losing an optimistic-version race before the conflict surfaces.
const maxContentionRetries = 3

type (
	// LowStockNotifier is told, best effort, when an operation leaves a
	// stock entry at the critical level.
	LowStockNotifier interface {
		NotifyLowStock(ctx context.Context, entry entities.StockEntry)
	}

	// AllocationService orchestrates every multi-entity transition. Each
	// call is one database transaction spanning the stock ledger, the
	// hopper state machine and the operation log; partial application is
	// never observable. Business-rule failures roll the transaction back
	// and are then recorded as a success=false operation so the audit
	// history includes failed attempts.
	AllocationService interface {
		ReceiveStock(ctx context.Context, req domain.ReceiveStockRequest, actor domain.Actor) (domain.OperationResponse, error)
		AdjustInventory(ctx context.Context, req domain.AdjustInventoryRequest, actor domain.Actor) (domain.OperationResponse, error)

		FillHopper(ctx context.Context, req domain.FillHopperRequest, actor domain.Actor) (domain.OperationResponse, error)
		InstallHopper(ctx context.Context, req domain.InstallHopperRequest, actor domain.Actor) (domain.OperationResponse, error)
		RemoveHopper(ctx context.Context, req domain.RemoveHopperRequest, actor domain.Actor) (domain.OperationResponse, error)
		SendHopperToCleaning(ctx context.Context, hopperID uint, actor domain.Actor) (domain.OperationResponse, error)
		CleanHopper(ctx context.Context, hopperID uint, actor domain.Actor) (domain.OperationResponse, error)
		IssueHopper(ctx context.Context, req domain.IssueHopperRequest, actor domain.Actor) (domain.OperationResponse, error)
		ReturnHopper(ctx context.Context, req domain.ReturnHopperRequest, actor domain.Actor) (domain.OperationResponse, error)

		ChangeMachineStatus(ctx context.Context, req domain.ChangeMachineStatusRequest, actor domain.Actor) (domain.OperationResponse, error)
		MarkMachineService(ctx context.Context, req domain.MarkMachineServiceRequest, actor domain.Actor) (domain.OperationResponse, error)
		AssignMachineOperator(ctx context.Context, req domain.AssignMachineOperatorRequest, actor domain.Actor) (domain.OperationResponse, error)
	}

	allocationService struct {
		db                  *gorm.DB
		stockRepository     stock.StockRepository
		hopperRepository    hopper.HopperRepository
		machineRepository   machine.MachineRepository
		operationRepository operation.OperationRepository
		notifier            LowStockNotifier
	}
)

func NewAllocationService(
	db *gorm.DB,
	stockRepository stock.StockRepository,
	hopperRepository hopper.HopperRepository,
	machineRepository machine.MachineRepository,
	operationRepository operation.OperationRepository,
	notifier LowStockNotifier,
) AllocationService {
	return &allocationService{
		db:                  db,
		stockRepository:     stockRepository,
		hopperRepository:    hopperRepository,
		machineRepository:   machineRepository,
		operationRepository: operationRepository,
		notifier:            notifier,
	}
}

// runAtomic executes fn in one transaction, replaying it on contention. The
// context travels into the transaction so cancellation rolls back fully.
func (s *allocationService) runAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt <= maxContentionRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !errors.Is(err, domain.ErrContention) {
			return err
		}
	}
	return err
}

// recordFailure appends a success=false operation after the data transaction
// rolled back. It runs outside that transaction on purpose.
func (s *allocationService) recordFailure(ctx context.Context, params operation.RecordParams, cause error) {
	params.Success = false
	params.ErrorMessage = cause.Error()
	// Precondition failures abort before the closure writes a description.
	if params.Description == "" {
		if params.EntityID != nil {
			params.Description = fmt.Sprintf("%s on %s %d", params.OperationType, params.EntityType, *params.EntityID)
		} else {
			params.Description = string(params.OperationType)
		}
	}
	op := operation.BuildRecord(params)
	if err := s.operationRepository.Create(ctx, op); err != nil {
		log.Printf("allocation: failed to record failed attempt: %v", err)
	}
}

// finish is the shared tail of every composite operation: on business-rule
// failure it records the failed attempt and propagates the typed error.
func (s *allocationService) finish(ctx context.Context, op *entities.Operation, params operation.RecordParams, err error) (domain.OperationResponse, error) {
	if err != nil {
		if domain.IsBusinessError(err) {
			s.recordFailure(ctx, params, err)
		}
		return domain.OperationResponse{}, err
	}
	return operation.ToResponse(op), nil
}

// notifyIfCritical re-reads the entry after commit and alerts when the
// operation left it at the critical level. Never fails the operation.
func (s *allocationService) notifyIfCritical(ctx context.Context, ingredientTypeID uint) {
	if s.notifier == nil {
		return
	}
	entry, err := s.stockRepository.GetEntry(ctx, ingredientTypeID)
	if err != nil {
		return
	}
	if entry.Level() == entities.StockLevelCritical {
		s.notifier.NotifyLowStock(ctx, *entry)
	}
}

func (s *allocationService) ReceiveStock(ctx context.Context, req domain.ReceiveStockRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationInventoryReceive,
		EntityType:    "ingredient_type",
		EntityID:      &req.IngredientTypeID,
		Success:       true,
		Photos:        req.Photos,
		Metadata: map[string]interface{}{
			"quantity": req.Quantity,
		},
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stockRepo := s.stockRepository.WithTx(tx)
		entry, err := stockRepo.Restock(ctx, req.IngredientTypeID, req.Quantity)
		if err != nil {
			return err
		}
		params.Description = fmt.Sprintf("received %.3f %s of %s",
			req.Quantity, entry.IngredientType.Unit, entry.IngredientType.Name)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) AdjustInventory(ctx context.Context, req domain.AdjustInventoryRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationInventoryAdjust,
		EntityType:    "ingredient_type",
		EntityID:      &req.IngredientTypeID,
		Success:       true,
		Photos:        req.Photos,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stockRepo := s.stockRepository.WithTx(tx)
		entry, delta, err := stockRepo.Adjust(ctx, req.IngredientTypeID, req.CountedQuantity)
		if err != nil {
			return err
		}
		params.Metadata = map[string]interface{}{
			"counted_quantity":  req.CountedQuantity,
			"previous_quantity": req.CountedQuantity - delta,
			"delta":             delta,
			"reason":            req.Reason,
		}
		params.Description = fmt.Sprintf("adjusted %s to counted %.3f %s (delta %+.3f)",
			entry.IngredientType.Name, req.CountedQuantity, entry.IngredientType.Unit, delta)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	res, err := s.finish(ctx, op, params, err)
	if err == nil {
		s.notifyIfCritical(ctx, req.IngredientTypeID)
	}
	return res, err
}

func (s *allocationService) FillHopper(ctx context.Context, req domain.FillHopperRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationHopperFill,
		EntityType:    "hopper",
		EntityID:      &req.HopperID,
		Success:       true,
		Photos:        req.Photos,
	}

	delta := req.WeightFull - req.WeightEmpty
	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stockRepo := s.stockRepository.WithTx(tx)
		hopperRepo := s.hopperRepository.WithTx(tx)

		h, err := hopperRepo.GetByID(ctx, req.HopperID)
		if err != nil {
			return err
		}
		// Consume before touching the hopper: if stock is short the
		// transition is never attempted.
		entry, err := stockRepo.Consume(ctx, req.IngredientTypeID, delta)
		if err != nil {
			return err
		}
		if err := hopper.Fill(h, req.IngredientTypeID, req.WeightEmpty, req.WeightFull, time.Now()); err != nil {
			return err
		}
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Metadata = map[string]interface{}{
			"ingredient_type_id": req.IngredientTypeID,
			"weight_empty":       req.WeightEmpty,
			"weight_full":        req.WeightFull,
			"consumed":           delta,
		}
		params.Description = fmt.Sprintf("filled hopper %s with %.3f %s of %s",
			h.Code, delta, entry.IngredientType.Unit, entry.IngredientType.Name)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	res, err := s.finish(ctx, op, params, err)
	if err == nil {
		s.notifyIfCritical(ctx, req.IngredientTypeID)
	}
	return res, err
}

func (s *allocationService) InstallHopper(ctx context.Context, req domain.InstallHopperRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityOperator, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationHopperInstall,
		EntityType:    "hopper",
		EntityID:      &req.HopperID,
		Success:       true,
		Photos:        req.Photos,
		Metadata: map[string]interface{}{
			"machine_id": req.MachineID,
		},
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		hopperRepo := s.hopperRepository.WithTx(tx)
		machineRepo := s.machineRepository.WithTx(tx)

		h, err := hopperRepo.GetByID(ctx, req.HopperID)
		if err != nil {
			return err
		}
		m, err := machineRepo.GetByID(ctx, req.MachineID)
		if err != nil {
			return err
		}
		installed, err := hopperRepo.CountInstalled(ctx, m.ID)
		if err != nil {
			return err
		}
		if installed >= entities.MachineHopperCapacity {
			return fmt.Errorf("machine %s already holds %d hoppers: %w",
				m.Code, installed, domain.ErrCapacityExceeded)
		}
		if err := hopper.Install(h, m.ID); err != nil {
			return err
		}
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("installed hopper %s on machine %s", h.Code, m.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) RemoveHopper(ctx context.Context, req domain.RemoveHopperRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityOperator, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationHopperRemove,
		EntityType:    "hopper",
		EntityID:      &req.HopperID,
		Success:       true,
		Photos:        req.Photos,
	}

	var op *entities.Operation
	var restockedTypeID uint
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stockRepo := s.stockRepository.WithTx(tx)
		hopperRepo := s.hopperRepository.WithTx(tx)

		h, err := hopperRepo.GetByID(ctx, req.HopperID)
		if err != nil {
			return err
		}
		typeID := h.IngredientTypeID
		residual, err := hopper.Remove(h, req.CurrentWeight)
		if err != nil {
			return err
		}
		if residual > 0 && typeID != nil {
			if _, err := stockRepo.Restock(ctx, *typeID, residual); err != nil {
				return err
			}
			restockedTypeID = *typeID
		}
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Metadata = map[string]interface{}{
			"current_weight": req.CurrentWeight,
			"residual":       residual,
		}
		params.Description = fmt.Sprintf("removed hopper %s, returned %.3f to stock", h.Code, residual)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	res, err := s.finish(ctx, op, params, err)
	if err == nil && restockedTypeID != 0 {
		s.notifyIfCritical(ctx, restockedTypeID)
	}
	return res, err
}

func (s *allocationService) SendHopperToCleaning(ctx context.Context, hopperID uint, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationHopperClean,
		EntityType:    "hopper",
		EntityID:      &hopperID,
		Success:       true,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		hopperRepo := s.hopperRepository.WithTx(tx)
		h, err := hopperRepo.GetByID(ctx, hopperID)
		if err != nil {
			return err
		}
		if err := hopper.SendToCleaning(h); err != nil {
			return err
		}
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("sent hopper %s to cleaning", h.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) CleanHopper(ctx context.Context, hopperID uint, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationHopperClean,
		EntityType:    "hopper",
		EntityID:      &hopperID,
		Success:       true,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		hopperRepo := s.hopperRepository.WithTx(tx)
		h, err := hopperRepo.GetByID(ctx, hopperID)
		if err != nil {
			return err
		}
		if err := hopper.Clean(h, time.Now()); err != nil {
			return err
		}
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("cleaned hopper %s", h.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) IssueHopper(ctx context.Context, req domain.IssueHopperRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationIssueHopper,
		EntityType:    "hopper",
		EntityID:      &req.HopperID,
		Success:       true,
		Metadata: map[string]interface{}{
			"operator_id": req.OperatorID,
		},
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		hopperRepo := s.hopperRepository.WithTx(tx)
		h, err := hopperRepo.GetByID(ctx, req.HopperID)
		if err != nil {
			return err
		}
		hopper.Assign(h, req.OperatorID)
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("issued hopper %s to operator %d", h.Code, req.OperatorID)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) ReturnHopper(ctx context.Context, req domain.ReturnHopperRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityWarehouse, domain.CapabilityOperator, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationReturnHopper,
		EntityType:    "hopper",
		EntityID:      &req.HopperID,
		Success:       true,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		hopperRepo := s.hopperRepository.WithTx(tx)
		h, err := hopperRepo.GetByID(ctx, req.HopperID)
		if err != nil {
			return err
		}
		hopper.Unassign(h)
		if err := hopperRepo.SaveVersioned(ctx, h); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("returned hopper %s to warehouse pool", h.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) ChangeMachineStatus(ctx context.Context, req domain.ChangeMachineStatusRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityOperator, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationMachineStatusChange,
		EntityType:    "machine",
		EntityID:      &req.MachineID,
		Success:       true,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		machineRepo := s.machineRepository.WithTx(tx)
		m, err := machineRepo.GetByID(ctx, req.MachineID)
		if err != nil {
			return err
		}
		previous := m.Status
		m.Status = entities.MachineStatus(req.Status)
		if err := machineRepo.Update(ctx, m); err != nil {
			return err
		}
		params.Metadata = map[string]interface{}{
			"previous_status": string(previous),
			"new_status":      req.Status,
			"reason":          req.Reason,
		}
		params.Description = fmt.Sprintf("machine %s status %s -> %s", m.Code, previous, req.Status)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) MarkMachineService(ctx context.Context, req domain.MarkMachineServiceRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityOperator, domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationMachineService,
		EntityType:    "machine",
		EntityID:      &req.MachineID,
		Success:       true,
		Photos:        req.Photos,
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		machineRepo := s.machineRepository.WithTx(tx)
		m, err := machineRepo.GetByID(ctx, req.MachineID)
		if err != nil {
			return err
		}
		now := time.Now()
		m.LastServiceAt = &now
		if err := machineRepo.Update(ctx, m); err != nil {
			return err
		}
		params.Metadata = map[string]interface{}{"notes": req.Notes}
		params.Description = fmt.Sprintf("serviced machine %s", m.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}

func (s *allocationService) AssignMachineOperator(ctx context.Context, req domain.AssignMachineOperatorRequest, actor domain.Actor) (domain.OperationResponse, error) {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.OperationResponse{}, domain.ErrUserNotAllowed
	}

	params := operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationMachineStatusChange,
		EntityType:    "machine",
		EntityID:      &req.MachineID,
		Success:       true,
		Metadata: map[string]interface{}{
			"operator_id": req.OperatorID,
		},
	}

	var op *entities.Operation
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		machineRepo := s.machineRepository.WithTx(tx)
		m, err := machineRepo.GetByID(ctx, req.MachineID)
		if err != nil {
			return err
		}
		m.AssignedOperatorID = &req.OperatorID
		if err := machineRepo.Update(ctx, m); err != nil {
			return err
		}
		params.Description = fmt.Sprintf("assigned operator %d to machine %s", req.OperatorID, m.Code)
		op = operation.BuildRecord(params)
		return s.operationRepository.WithTx(tx).Create(ctx, op)
	})
	return s.finish(ctx, op, params, err)
}
