package hopper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
)

func newHopper(status entities.HopperStatus) *entities.Hopper {
	return &entities.Hopper{
		ID:     1,
		Code:   "HOP-001",
		Status: status,
	}
}

func TestFillFromEmpty(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	now := time.Now()

	err := Fill(h, 7, 1.0, 4.5, now)
	require.NoError(t, err)

	assert.Equal(t, entities.HopperStatusFilled, h.Status)
	require.NotNil(t, h.IngredientTypeID)
	assert.Equal(t, uint(7), *h.IngredientTypeID)
	assert.Equal(t, 1.0, h.WeightEmpty)
	require.NotNil(t, h.WeightFull)
	assert.Equal(t, 4.5, *h.WeightFull)
	assert.Equal(t, 3.5, h.IngredientWeight())
	require.NotNil(t, h.LastFilledAt)
	assert.Equal(t, now, *h.LastFilledAt)
}

func TestFillRejectsNonPositiveNetWeight(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)

	err := Fill(h, 7, 2.0, 2.0, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entities.HopperStatusEmpty, h.Status)
}

func TestInstallFromFilled(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	require.NoError(t, Fill(h, 7, 1.0, 4.5, time.Now()))

	err := Install(h, 3)
	require.NoError(t, err)

	assert.Equal(t, entities.HopperStatusInstalled, h.Status)
	require.NotNil(t, h.MachineID)
	assert.Equal(t, uint(3), *h.MachineID)
	require.NotNil(t, h.CurrentWeight)
	assert.Equal(t, 4.5, *h.CurrentWeight)
}

func TestRemoveReturnsResidualAndClears(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	require.NoError(t, Fill(h, 7, 1.0, 4.5, time.Now()))
	require.NoError(t, Install(h, 3))

	residual, err := Remove(h, 2.2)
	require.NoError(t, err)

	assert.InDelta(t, 1.2, residual, 1e-9)
	assert.Equal(t, entities.HopperStatusEmpty, h.Status)
	assert.Nil(t, h.MachineID)
	assert.Nil(t, h.IngredientTypeID)
	assert.Nil(t, h.WeightFull)
	assert.Nil(t, h.CurrentWeight)
}

func TestRemoveBelowEmptyWeightYieldsZeroResidual(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	require.NoError(t, Fill(h, 7, 1.0, 4.5, time.Now()))
	require.NoError(t, Install(h, 3))

	residual, err := Remove(h, 0.6)
	require.NoError(t, err)
	assert.Equal(t, 0.0, residual)
}

func TestCleaningCycle(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	now := time.Now()

	require.NoError(t, SendToCleaning(h))
	assert.Equal(t, entities.HopperStatusCleaning, h.Status)

	require.NoError(t, Clean(h, now))
	assert.Equal(t, entities.HopperStatusEmpty, h.Status)
	require.NotNil(t, h.LastCleanedAt)
	assert.Equal(t, now, *h.LastCleanedAt)
}

func TestInvalidEdges(t *testing.T) {
	cases := []struct {
		name string
		from entities.HopperStatus
		call func(h *entities.Hopper) error
	}{
		{"fill a filled hopper", entities.HopperStatusFilled, func(h *entities.Hopper) error {
			return Fill(h, 7, 1.0, 4.5, time.Now())
		}},
		{"fill an installed hopper", entities.HopperStatusInstalled, func(h *entities.Hopper) error {
			return Fill(h, 7, 1.0, 4.5, time.Now())
		}},
		{"fill a hopper in cleaning", entities.HopperStatusCleaning, func(h *entities.Hopper) error {
			return Fill(h, 7, 1.0, 4.5, time.Now())
		}},
		{"install an empty hopper", entities.HopperStatusEmpty, func(h *entities.Hopper) error {
			return Install(h, 3)
		}},
		{"install an installed hopper", entities.HopperStatusInstalled, func(h *entities.Hopper) error {
			return Install(h, 3)
		}},
		{"remove an empty hopper", entities.HopperStatusEmpty, func(h *entities.Hopper) error {
			_, err := Remove(h, 1.0)
			return err
		}},
		{"remove a filled hopper", entities.HopperStatusFilled, func(h *entities.Hopper) error {
			_, err := Remove(h, 1.0)
			return err
		}},
		{"send a filled hopper to cleaning", entities.HopperStatusFilled, func(h *entities.Hopper) error {
			return SendToCleaning(h)
		}},
		{"send an installed hopper to cleaning", entities.HopperStatusInstalled, func(h *entities.Hopper) error {
			return SendToCleaning(h)
		}},
		{"clean a hopper not in cleaning", entities.HopperStatusEmpty, func(h *entities.Hopper) error {
			return Clean(h, time.Now())
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHopper(tc.from)
			err := tc.call(h)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, tc.from, h.Status, "status must not move on a rejected edge")
		})
	}
}

func TestFillPercentageAndRefill(t *testing.T) {
	h := newHopper(entities.HopperStatusEmpty)
	require.NoError(t, Fill(h, 7, 1.0, 11.0, time.Now()))
	require.NoError(t, Install(h, 3))

	assert.InDelta(t, 100.0, h.FillPercentage(), 1e-9)
	assert.False(t, h.NeedsRefill())

	low := 2.5 // 1.5 of 10 remaining
	h.CurrentWeight = &low
	assert.InDelta(t, 15.0, h.FillPercentage(), 1e-9)
	assert.True(t, h.NeedsRefill())
}

func TestAssignUnassign(t *testing.T) {
	h := newHopper(entities.HopperStatusFilled)

	Assign(h, 9)
	require.NotNil(t, h.AssignedOperatorID)
	assert.Equal(t, uint(9), *h.AssignedOperatorID)

	Unassign(h)
	assert.Nil(t, h.AssignedOperatorID)
}
