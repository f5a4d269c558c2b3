package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
)

func TestCreateIngredientTypeRequiresAdmin(t *testing.T) {
	svc := NewStockService(NewStockRepository(newTestDB(t)))

	req := domain.CreateIngredientTypeRequest{
		Name:      "Cocoa",
		Category:  "chocolate",
		Unit:      "kg",
		MinStock:  5,
		ReorderAt: 10,
		MaxStock:  50,
	}

	warehouse := domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilityWarehouse}}
	_, err := svc.CreateIngredientType(context.Background(), req, warehouse)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	admin := domain.Actor{UserID: 2, Capabilities: []domain.Capability{domain.CapabilityAdmin}}
	res, err := svc.CreateIngredientType(context.Background(), req, admin)
	require.NoError(t, err)
	assert.Equal(t, "Cocoa", res.Name)
	assert.Equal(t, 0.0, res.Quantity)
	assert.Equal(t, "critical", res.Level)
}

func TestUpdateIngredientTypeThresholds(t *testing.T) {
	repo := NewStockRepository(newTestDB(t))
	svc := NewStockService(repo)
	ingredient := seedIngredient(t, repo, 15)

	admin := domain.Actor{UserID: 2, Capabilities: []domain.Capability{domain.CapabilityAdmin}}
	newMin := 18.0
	err := svc.UpdateIngredientType(context.Background(), ingredient.ID, domain.UpdateIngredientTypeRequest{
		MinStock: &newMin,
	}, admin)
	require.NoError(t, err)

	// Raising the floor reclassifies the same quantity.
	status, err := svc.Status(context.Background(), ingredient.ID)
	require.NoError(t, err)
	assert.Equal(t, "critical", status.Level)
}

func TestSummaryCountsLevels(t *testing.T) {
	repo := NewStockRepository(newTestDB(t))
	svc := NewStockService(repo)

	quantities := map[string]float64{
		"Arabica": 5,   // critical
		"Robusta": 15,  // low
		"Sugar":   50,  // normal
		"Cups":    150, // excess
	}
	for name, qty := range quantities {
		ingredient := seedNamedIngredient(t, repo, name)
		if qty > 0 {
			_, err := repo.Restock(context.Background(), ingredient.ID, qty)
			require.NoError(t, err)
		}
	}

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalTypes)
	assert.Equal(t, 1, summary.CriticalCount)
	assert.Equal(t, 1, summary.LowCount)
	assert.Len(t, summary.Entries, 4)
}

func seedNamedIngredient(t *testing.T, repo StockRepository, name string) *entities.IngredientType {
	ingredient := &entities.IngredientType{
		Name:      name,
		Category:  "misc",
		Unit:      "kg",
		MinStock:  10,
		ReorderAt: 20,
		MaxStock:  100,
		IsActive:  true,
	}
	require.NoError(t, repo.CreateIngredientType(context.Background(), ingredient))
	return ingredient
}
