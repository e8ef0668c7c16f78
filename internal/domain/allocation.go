package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Allocation represents the result of splitting one amount across recipients
// Shares are ordered by recipient index and owned by the caller once returned.
type Allocation struct {
	ID          uuid.UUID
	Amount      ScaledAmount
	Recipients  int
	OutputScale uint32
	Shares      []ScaledAmount
	CreatedAt   time.Time
}

// Total returns the sum of all share mantissas
func (a *Allocation) Total() *big.Int {
	return SumMantissas(a.Shares)
}

// Spread returns the difference between the largest and smallest share mantissa
func (a *Allocation) Spread() *big.Int {
	if len(a.Shares) == 0 {
		return new(big.Int)
	}

	lo := a.Shares[0].Mantissa()
	hi := a.Shares[0].Mantissa()
	for _, share := range a.Shares[1:] {
		m := share.Mantissa()
		if m.Cmp(lo) < 0 {
			lo = m
		}
		if m.Cmp(hi) > 0 {
			hi = m
		}
	}

	return hi.Sub(hi, lo)
}

// Validate ensures the allocation adheres to domain rules
// CRITICAL: the share mantissas must add up to the amount's mantissa exactly
func (a *Allocation) Validate() error {
	if a.Recipients <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRecipientCount, a.Recipients)
	}

	if len(a.Shares) != a.Recipients {
		return fmt.Errorf("allocation must have %d shares, got %d", a.Recipients, len(a.Shares))
	}

	for i, share := range a.Shares {
		if share.Scale() != a.OutputScale {
			return fmt.Errorf("share %d has scale %d, expected %d", i, share.Scale(), a.OutputScale)
		}
	}

	total := a.Total()
	if total.Cmp(a.Amount.Mantissa()) != 0 {
		return fmt.Errorf("%w: shares sum to %s, amount is %s", ErrConservationViolated, total, a.Amount.Mantissa())
	}

	return nil
}

// SumMantissas adds up the mantissas of the given amounts, ignoring their scales
func SumMantissas(amounts []ScaledAmount) *big.Int {
	total := new(big.Int)
	for _, amount := range amounts {
		if amount.mantissa != nil {
			total.Add(total, amount.mantissa)
		}
	}
	return total
}
