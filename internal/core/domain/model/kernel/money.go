package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using the NewMoney constructor to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// Money represents a non-negative monetary amount stored in integer cents.
// Keeping amounts in cents makes arithmetic exact, so totals computed from
// quantities and unit prices can be compared without a floating-point epsilon.
// Money is an immutable value object; the zero value is invalid and must be
// created through NewMoney.
//
// Example:
//
//	price, err := kernel.NewMoney(1250)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("unit price: %s", price) // Output: unit price: 12.50
type Money struct { //nolint:recvcheck //using for validation
	cents int64
	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in cents.
// The amount must not be negative.
//
// Returns:
//   - Money: A valid money instance
//   - error: Validation error if the amount is negative
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount is invalid", fmt.Errorf("%d is negative", cents))
	}

	return Money{
		cents: cents,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two money values.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.cents + other.cents)
}

// Mul returns the amount multiplied by a non-negative quantity.
// Used to compute line totals from a unit price and item quantity.
func (m Money) Mul(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is negative", quantity))
	}

	return NewMoney(m.cents * int64(quantity))
}

// IsEqual compares two money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the decimal representation with two fraction digits, e.g. "12.50".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// Validate checks that the Money value was created through NewMoney.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
