package allocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/hopper"
	"github.com/jamshiddins/vendbot/pkg/machine"
	"github.com/jamshiddins/vendbot/pkg/operation"
	"github.com/jamshiddins/vendbot/pkg/stock"
)

type fakeNotifier struct {
	notified []entities.StockEntry
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, entry entities.StockEntry) {
	f.notified = append(f.notified, entry)
}

type fixture struct {
	db       *gorm.DB
	stock    stock.StockRepository
	hoppers  hopper.HopperRepository
	machines machine.MachineRepository
	ops      operation.OperationRepository
	notifier *fakeNotifier
	svc      AllocationService
}

func newFixture(t *testing.T) *fixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.IngredientType{},
		&entities.StockEntry{},
		&entities.Machine{},
		&entities.Hopper{},
		&entities.Operation{},
		&entities.Photo{},
	)
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		stock:    stock.NewStockRepository(db),
		hoppers:  hopper.NewHopperRepository(db),
		machines: machine.NewMachineRepository(db),
		ops:      operation.NewOperationRepository(db),
		notifier: &fakeNotifier{},
	}
	f.svc = NewAllocationService(db, f.stock, f.hoppers, f.machines, f.ops, f.notifier)
	return f
}

func (f *fixture) seedIngredient(t *testing.T, qty float64) *entities.IngredientType {
	ingredient := &entities.IngredientType{
		Name:      "Coffee Beans",
		Category:  "coffee",
		Unit:      "kg",
		MinStock:  10,
		ReorderAt: 20,
		MaxStock:  200,
		IsActive:  true,
	}
	require.NoError(t, f.stock.CreateIngredientType(context.Background(), ingredient))
	if qty > 0 {
		_, err := f.stock.Restock(context.Background(), ingredient.ID, qty)
		require.NoError(t, err)
	}
	return ingredient
}

func (f *fixture) seedHopper(t *testing.T, code string) *entities.Hopper {
	h := &entities.Hopper{Code: code, Status: entities.HopperStatusEmpty}
	require.NoError(t, f.hoppers.Create(context.Background(), h))
	return h
}

func (f *fixture) seedMachine(t *testing.T, code string) *entities.Machine {
	m := &entities.Machine{
		Code:            code,
		Name:            "Office " + code,
		LocationAddress: "Amir Temur 42",
		Status:          entities.MachineStatusActive,
	}
	require.NoError(t, f.machines.Create(context.Background(), m))
	return m
}

func (f *fixture) quantity(t *testing.T, ingredientTypeID uint) float64 {
	entry, err := f.stock.GetEntry(context.Background(), ingredientTypeID)
	require.NoError(t, err)
	return entry.Quantity
}

func (f *fixture) lastOperation(t *testing.T) *entities.Operation {
	ops, err := f.ops.List(context.Background(), domain.HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.NotEmpty(t, ops)
	return &ops[0]
}

// flakyStockRepository loses the optimistic-version race a fixed number of
// times before behaving like the wrapped repository.
type flakyStockRepository struct {
	stock.StockRepository
	losses *int32
}

func (r *flakyStockRepository) WithTx(tx *gorm.DB) stock.StockRepository {
	return &flakyStockRepository{StockRepository: r.StockRepository.WithTx(tx), losses: r.losses}
}

func (r *flakyStockRepository) Consume(ctx context.Context, ingredientTypeID uint, qty float64) (*entities.StockEntry, error) {
	if atomic.AddInt32(r.losses, -1) >= 0 {
		return nil, fmt.Errorf("stock entry for type %d: %w", ingredientTypeID, domain.ErrContention)
	}
	return r.StockRepository.Consume(ctx, ingredientTypeID, qty)
}

var (
	warehouse = domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilityWarehouse}}
	operator  = domain.Actor{UserID: 2, Capabilities: []domain.Capability{domain.CapabilityOperator}}
	admin     = domain.Actor{UserID: 3, Capabilities: []domain.Capability{domain.CapabilityAdmin}}
	driver    = domain.Actor{UserID: 4, Capabilities: []domain.Capability{domain.CapabilityDriver}}
)

func TestReceiveStock(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 0)

	res, err := f.svc.ReceiveStock(context.Background(), domain.ReceiveStockRequest{
		IngredientTypeID: ingredient.ID,
		Quantity:         100,
	}, warehouse)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, string(entities.OperationInventoryReceive), res.OperationType)

	assert.Equal(t, 100.0, f.quantity(t, ingredient.ID))
}

func TestReceiveStockRequiresWarehouse(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 0)

	_, err := f.svc.ReceiveStock(context.Background(), domain.ReceiveStockRequest{
		IngredientTypeID: ingredient.ID,
		Quantity:         100,
	}, driver)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	// Denied before anything ran: no stock moved, nothing logged.
	assert.Equal(t, 0.0, f.quantity(t, ingredient.ID))
	ops, err := f.ops.List(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestFillHopperConsumesStock(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")

	res, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Equal(t, 85.0, f.quantity(t, ingredient.ID))

	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusFilled, loaded.Status)
	require.NotNil(t, loaded.IngredientTypeID)
	assert.Equal(t, ingredient.ID, *loaded.IngredientTypeID)
}

func TestFillHopperInsufficientStock(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 5)
	h := f.seedHopper(t, "HOP-001")

	_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Transaction rolled back: stock untouched, hopper still empty.
	assert.Equal(t, 5.0, f.quantity(t, ingredient.ID))
	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusEmpty, loaded.Status)

	// The failed attempt is still on the record, with a description even
	// though the fill aborted before describing itself.
	op := f.lastOperation(t)
	assert.False(t, op.Success)
	assert.Equal(t, entities.OperationHopperFill, op.OperationType)
	assert.Contains(t, op.ErrorMessage, "insufficient")
	assert.NotEmpty(t, op.Description)
}

func TestReceiveStockRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 50)

	_, err := f.svc.ReceiveStock(context.Background(), domain.ReceiveStockRequest{
		IngredientTypeID: ingredient.ID,
		Quantity:         -10,
	}, warehouse)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 50.0, f.quantity(t, ingredient.ID))

	op := f.lastOperation(t)
	assert.False(t, op.Success)
	assert.Equal(t, entities.OperationInventoryReceive, op.OperationType)
	assert.NotEmpty(t, op.Description)
}

func TestFillHopperRetriesOnContention(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")

	losses := int32(1)
	svc := NewAllocationService(f.db,
		&flakyStockRepository{StockRepository: f.stock, losses: &losses},
		f.hoppers, f.machines, f.ops, f.notifier)

	res, err := svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 85.0, f.quantity(t, ingredient.ID))

	// The lost attempt rolled back and was replayed; the log holds exactly
	// one record, the successful one.
	ops, err := f.ops.List(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.True(t, ops[0].Success)
}

func TestFillHopperSurfacesPersistentContention(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")

	losses := int32(maxContentionRetries + 1)
	svc := NewAllocationService(f.db,
		&flakyStockRepository{StockRepository: f.stock, losses: &losses},
		f.hoppers, f.machines, f.ops, f.notifier)

	_, err := svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	assert.ErrorIs(t, err, domain.ErrContention)

	assert.Equal(t, 100.0, f.quantity(t, ingredient.ID))
	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusEmpty, loaded.Status)

	op := f.lastOperation(t)
	assert.False(t, op.Success)
	assert.NotEmpty(t, op.Description)
	assert.Contains(t, op.ErrorMessage, "concurrent")
}

func TestConcurrentFillsOnlyOneSucceeds(t *testing.T) {
	f := newFixture(t)
	// One shared connection keeps both transactions on the same in-memory
	// database.
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// Enough stock for exactly one of the two fills.
	ingredient := f.seedIngredient(t, 5)
	first := f.seedHopper(t, "HOP-001")
	second := f.seedHopper(t, "HOP-002")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, h := range []*entities.Hopper{first, second} {
		wg.Add(1)
		go func(hopperID uint) {
			defer wg.Done()
			_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
				HopperID:         hopperID,
				IngredientTypeID: ingredient.ID,
				WeightEmpty:      1.0,
				WeightFull:       6.0,
			}, warehouse)
			errs <- err
		}(h.ID)
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected fill error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0.0, f.quantity(t, ingredient.ID))

	ops, err := f.ops.List(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.ElementsMatch(t, []bool{true, false}, []bool{ops[0].Success, ops[1].Success})
}

func TestFillRemoveRoundTripRestoresStock(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")
	m := f.seedMachine(t, "VM-001")

	_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	require.NoError(t, err)

	_, err = f.svc.InstallHopper(context.Background(), domain.InstallHopperRequest{
		HopperID:  h.ID,
		MachineID: m.ID,
	}, operator)
	require.NoError(t, err)

	// Nothing vended: removing at full weight credits everything back.
	_, err = f.svc.RemoveHopper(context.Background(), domain.RemoveHopperRequest{
		HopperID:      h.ID,
		CurrentWeight: 16.0,
	}, operator)
	require.NoError(t, err)

	assert.Equal(t, 100.0, f.quantity(t, ingredient.ID))

	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusEmpty, loaded.Status)
	assert.Nil(t, loaded.MachineID)
	assert.Nil(t, loaded.IngredientTypeID)
}

func TestRemoveHopperCreditsResidual(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")
	m := f.seedMachine(t, "VM-001")

	_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       16.0,
	}, warehouse)
	require.NoError(t, err)
	_, err = f.svc.InstallHopper(context.Background(), domain.InstallHopperRequest{
		HopperID:  h.ID,
		MachineID: m.ID,
	}, operator)
	require.NoError(t, err)

	// 6.0 gross = 5.0 of ingredient left in the hopper.
	_, err = f.svc.RemoveHopper(context.Background(), domain.RemoveHopperRequest{
		HopperID:      h.ID,
		CurrentWeight: 6.0,
	}, operator)
	require.NoError(t, err)

	assert.Equal(t, 90.0, f.quantity(t, ingredient.ID))
}

func TestRemoveEmptyHopperRecordsFailure(t *testing.T) {
	f := newFixture(t)
	h := f.seedHopper(t, "HOP-001")

	_, err := f.svc.RemoveHopper(context.Background(), domain.RemoveHopperRequest{
		HopperID:      h.ID,
		CurrentWeight: 1.0,
	}, operator)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	op := f.lastOperation(t)
	assert.False(t, op.Success)
	assert.Equal(t, entities.OperationHopperRemove, op.OperationType)
}

func TestInstallRejectsFullMachine(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 200)
	m := f.seedMachine(t, "VM-001")

	for i := 0; i < entities.MachineHopperCapacity; i++ {
		h := f.seedHopper(t, "HOP-00"+string(rune('1'+i)))
		_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
			HopperID:         h.ID,
			IngredientTypeID: ingredient.ID,
			WeightEmpty:      1.0,
			WeightFull:       6.0,
		}, warehouse)
		require.NoError(t, err)
		_, err = f.svc.InstallHopper(context.Background(), domain.InstallHopperRequest{
			HopperID:  h.ID,
			MachineID: m.ID,
		}, operator)
		require.NoError(t, err)
	}

	extra := f.seedHopper(t, "HOP-EXT")
	_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         extra.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       6.0,
	}, warehouse)
	require.NoError(t, err)

	_, err = f.svc.InstallHopper(context.Background(), domain.InstallHopperRequest{
		HopperID:  extra.ID,
		MachineID: m.ID,
	}, operator)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// Rejected install leaves the hopper filled and off the machine.
	loaded, err := f.hoppers.GetByID(context.Background(), extra.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusFilled, loaded.Status)
	assert.Nil(t, loaded.MachineID)

	op := f.lastOperation(t)
	assert.False(t, op.Success)
}

func TestAdjustInventoryNotifiesWhenCritical(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)

	res, err := f.svc.AdjustInventory(context.Background(), domain.AdjustInventoryRequest{
		IngredientTypeID: ingredient.ID,
		CountedQuantity:  5,
		Reason:           "spillage during audit",
	}, admin)
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.Equal(t, 5.0, f.quantity(t, ingredient.ID))
	require.Len(t, f.notifier.notified, 1)
	assert.Equal(t, ingredient.ID, f.notifier.notified[0].IngredientTypeID)
}

func TestAdjustInventoryRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)

	_, err := f.svc.AdjustInventory(context.Background(), domain.AdjustInventoryRequest{
		IngredientTypeID: ingredient.ID,
		CountedQuantity:  5,
	}, warehouse)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	assert.Equal(t, 100.0, f.quantity(t, ingredient.ID))
}

func TestFillHopperNotifiesWhenStockGoesCritical(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 12)
	h := f.seedHopper(t, "HOP-001")

	_, err := f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       6.0,
	}, warehouse)
	require.NoError(t, err)

	// 12 - 5 = 7, at or below min stock of 10.
	require.Len(t, f.notifier.notified, 1)
	assert.Equal(t, 7.0, f.notifier.notified[0].Quantity)
}

func TestCleaningCycle(t *testing.T) {
	f := newFixture(t)
	h := f.seedHopper(t, "HOP-001")

	_, err := f.svc.SendHopperToCleaning(context.Background(), h.ID, warehouse)
	require.NoError(t, err)

	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusCleaning, loaded.Status)

	// A hopper in cleaning cannot be filled.
	ingredient := f.seedIngredient(t, 100)
	_, err = f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       6.0,
	}, warehouse)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.CleanHopper(context.Background(), h.ID, warehouse)
	require.NoError(t, err)

	loaded, err = f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.HopperStatusEmpty, loaded.Status)
	assert.NotNil(t, loaded.LastCleanedAt)
}

func TestIssueAndReturnHopper(t *testing.T) {
	f := newFixture(t)
	h := f.seedHopper(t, "HOP-001")

	_, err := f.svc.IssueHopper(context.Background(), domain.IssueHopperRequest{
		HopperID:   h.ID,
		OperatorID: operator.UserID,
	}, warehouse)
	require.NoError(t, err)

	loaded, err := f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.AssignedOperatorID)
	assert.Equal(t, operator.UserID, *loaded.AssignedOperatorID)

	_, err = f.svc.ReturnHopper(context.Background(), domain.ReturnHopperRequest{
		HopperID: h.ID,
	}, operator)
	require.NoError(t, err)

	loaded, err = f.hoppers.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.AssignedOperatorID)
}

func TestChangeMachineStatus(t *testing.T) {
	f := newFixture(t)
	m := f.seedMachine(t, "VM-001")

	res, err := f.svc.ChangeMachineStatus(context.Background(), domain.ChangeMachineStatusRequest{
		MachineID: m.ID,
		Status:    "broken",
		Reason:    "grinder jammed",
	}, operator)
	require.NoError(t, err)
	assert.True(t, res.Success)

	loaded, err := f.machines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.MachineStatusBroken, loaded.Status)
	assert.False(t, loaded.IsOperational())
}

func TestMarkMachineService(t *testing.T) {
	f := newFixture(t)
	m := f.seedMachine(t, "VM-001")

	_, err := f.svc.MarkMachineService(context.Background(), domain.MarkMachineServiceRequest{
		MachineID: m.ID,
		Notes:     "descaled boiler",
	}, operator)
	require.NoError(t, err)

	loaded, err := f.machines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded.LastServiceAt)
}

func TestAssignMachineOperator(t *testing.T) {
	f := newFixture(t)
	m := f.seedMachine(t, "VM-001")

	_, err := f.svc.AssignMachineOperator(context.Background(), domain.AssignMachineOperatorRequest{
		MachineID:  m.ID,
		OperatorID: operator.UserID,
	}, operator)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = f.svc.AssignMachineOperator(context.Background(), domain.AssignMachineOperatorRequest{
		MachineID:  m.ID,
		OperatorID: operator.UserID,
	}, admin)
	require.NoError(t, err)

	loaded, err := f.machines.GetByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.AssignedOperatorID)
	assert.Equal(t, operator.UserID, *loaded.AssignedOperatorID)
}

func TestOperationHistoryRecordsCompositeRuns(t *testing.T) {
	f := newFixture(t)
	ingredient := f.seedIngredient(t, 100)
	h := f.seedHopper(t, "HOP-001")
	m := f.seedMachine(t, "VM-001")

	_, err := f.svc.ReceiveStock(context.Background(), domain.ReceiveStockRequest{
		IngredientTypeID: ingredient.ID,
		Quantity:         50,
	}, warehouse)
	require.NoError(t, err)

	_, err = f.svc.FillHopper(context.Background(), domain.FillHopperRequest{
		HopperID:         h.ID,
		IngredientTypeID: ingredient.ID,
		WeightEmpty:      1.0,
		WeightFull:       6.0,
	}, warehouse)
	require.NoError(t, err)

	_, err = f.svc.InstallHopper(context.Background(), domain.InstallHopperRequest{
		HopperID:  h.ID,
		MachineID: m.ID,
	}, operator)
	require.NoError(t, err)

	ops, err := f.ops.List(context.Background(), domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, entities.OperationHopperInstall, ops[0].OperationType)
	assert.Equal(t, entities.OperationHopperFill, ops[1].OperationType)
	assert.Equal(t, entities.OperationInventoryReceive, ops[2].OperationType)
	for _, op := range ops {
		assert.True(t, op.Success)
	}
}
