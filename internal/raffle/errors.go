package raffle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSeed is returned when the seed is not a hexadecimal u64.
	ErrInvalidSeed = errors.New("invalid seed")
	// ErrPoolExhausted means the tickets ran out before a tier was filled.
	// It is a data problem (too few eligible tickets), not a transient one.
	ErrPoolExhausted = errors.New("ticket pool exhausted")
	// ErrInvariantViolation signals an internal defect in the drawer.
	ErrInvariantViolation = errors.New("draw invariant violated")
	// ErrInvalidTiers is returned for negative or unnamed tier counts.
	ErrInvalidTiers = errors.New("invalid tier configuration")
)

// TierError reports which tier could not be filled.
type TierError struct {
	Tier     string
	Required int
	Drawn    int
	Err      error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("%s tier: drew %d of %d winners: %v", e.Tier, e.Drawn, e.Required, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}
