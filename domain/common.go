package domain

import (
	"errors"
)

type Capability string

const (
	CapabilityAdmin     Capability = "admin"
	CapabilityWarehouse Capability = "warehouse"
	CapabilityOperator  Capability = "operator"
	CapabilityDriver    Capability = "driver"
)

// Actor is the resolved identity handed to the core by the bot or API layer.
// The core never authenticates; it only authorizes against the capability
// tags carried here.
type Actor struct {
	UserID       uint
	Capabilities []Capability
}

// ActorFromRoles builds an actor from the role names carried in a token.
func ActorFromRoles(userID uint, roles []string) Actor {
	caps := make([]Capability, 0, len(roles))
	for _, r := range roles {
		caps = append(caps, Capability(r))
	}
	return Actor{UserID: userID, Capabilities: caps}
}

// Can reports whether the actor holds at least one of the given capabilities.
func (a Actor) Can(caps ...Capability) bool {
	for _, have := range a.Capabilities {
		for _, want := range caps {
			if have == want {
				return true
			}
		}
	}
	return false
}

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenNotFound  = "failed to token not found"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUserNotAllowed       = "user not allowed"

	// Business-rule violations surfaced by the inventory core.
	ErrInsufficientStock  = errors.New("insufficient available stock")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidRelease     = errors.New("release exceeds reserved quantity")
	ErrInvalidTransition  = errors.New("invalid hopper state transition")
	ErrCapacityExceeded   = errors.New("machine hopper capacity exceeded")
	ErrNotFound           = errors.New("entity not found")
	ErrContention         = errors.New("concurrent update conflict")
	ErrPersistenceFailure = errors.New("persistence failure")

	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrParseToken     = errors.New("failed to parse token claims")
)

// IsBusinessError reports whether err is a rule violation that should still
// be written to the operation log as a failed attempt.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrInsufficientStock,
		ErrInvalidQuantity,
		ErrInvalidRelease,
		ErrInvalidTransition,
		ErrCapacityExceeded,
		ErrNotFound,
		ErrContention,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
