package hopper

import (
	"fmt"
	"time"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
)

// The transition functions mutate the hopper in memory and return a typed
// error when the edge does not exist from the current status. Persisting the
// result (and any coupled stock movement) is the coordinator's job.

func invalidTransition(h *entities.Hopper, action string) error {
	return fmt.Errorf("hopper %s is %s, cannot %s: %w",
		h.Code, h.Status, action, domain.ErrInvalidTransition)
}

// Fill moves EMPTY -> FILLED. The caller must have consumed the fill weight
// from stock in the same transaction.
func Fill(h *entities.Hopper, ingredientTypeID uint, weightEmpty, weightFull float64, now time.Time) error {
	if h.Status != entities.HopperStatusEmpty {
		return invalidTransition(h, "fill")
	}
	if weightFull <= weightEmpty {
		return fmt.Errorf("hopper %s: full weight %.3f not above empty weight %.3f: %w",
			h.Code, weightFull, weightEmpty, domain.ErrInvalidTransition)
	}
	h.Status = entities.HopperStatusFilled
	h.IngredientTypeID = &ingredientTypeID
	h.WeightEmpty = weightEmpty
	h.WeightFull = &weightFull
	h.CurrentWeight = nil
	h.LastFilledAt = &now
	return nil
}

// Install moves FILLED -> INSTALLED. Machine capacity is checked by the
// coordinator before calling.
func Install(h *entities.Hopper, machineID uint) error {
	if h.Status != entities.HopperStatusFilled {
		return invalidTransition(h, "install")
	}
	h.Status = entities.HopperStatusInstalled
	h.MachineID = &machineID
	if h.WeightFull != nil {
		w := *h.WeightFull
		h.CurrentWeight = &w
	}
	return nil
}

// Remove moves INSTALLED -> EMPTY and reports the residual ingredient weight
// to credit back to stock. The hopper always comes back empty; residual
// contents are returned to the warehouse rather than left in the hopper.
func Remove(h *entities.Hopper, currentWeight float64) (residual float64, err error) {
	if h.Status != entities.HopperStatusInstalled {
		return 0, invalidTransition(h, "remove")
	}
	h.CurrentWeight = &currentWeight
	residual = h.CurrentIngredientWeight()

	h.Status = entities.HopperStatusEmpty
	h.MachineID = nil
	h.IngredientTypeID = nil
	h.WeightFull = nil
	h.CurrentWeight = nil
	return residual, nil
}

// SendToCleaning moves EMPTY -> CLEANING.
func SendToCleaning(h *entities.Hopper) error {
	if h.Status != entities.HopperStatusEmpty {
		return invalidTransition(h, "send to cleaning")
	}
	h.Status = entities.HopperStatusCleaning
	return nil
}

// Clean moves CLEANING -> EMPTY.
func Clean(h *entities.Hopper, now time.Time) error {
	if h.Status != entities.HopperStatusCleaning {
		return invalidTransition(h, "clean")
	}
	h.Status = entities.HopperStatusEmpty
	h.LastCleanedAt = &now
	return nil
}

// Assign and Unassign set the operator binding. Not a state transition;
// valid from any status.
func Assign(h *entities.Hopper, operatorID uint) {
	h.AssignedOperatorID = &operatorID
}

func Unassign(h *entities.Hopper) {
	h.AssignedOperatorID = nil
}
