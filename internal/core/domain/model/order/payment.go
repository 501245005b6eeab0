package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus tracks the payment axis of an order, independent of the
// fulfillment Status.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means payment is expected on delivery (cash).
	PaymentStatusPending

	// PaymentStatusPaid means the payment collaborator settled the amount.
	PaymentStatusPaid

	// PaymentStatusFailed means the payment collaborator reported a failure.
	PaymentStatusFailed

	// PaymentStatusRefunded means a settled payment was returned.
	PaymentStatusRefunded
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their
// string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "unknown",
		PaymentStatusPending:  "pending",
		PaymentStatusPaid:     "paid",
		PaymentStatusFailed:   "failed",
		PaymentStatusRefunded: "refunded",
	}
}

// PaymentStatusFromString parses a payment status name.
// Returns an error for unrecognized names.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if p == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", p))
	}
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the lowercase payment status name.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethod is how the consumer chose to pay at order creation.
type PaymentMethod string

const (
	// PaymentMethodCash defers payment to delivery.
	PaymentMethodCash PaymentMethod = "cash"

	// PaymentMethodCard is settled up front by the payment collaborator.
	PaymentMethodCard PaymentMethod = "card"

	// PaymentMethodBankTransfer is settled up front by the payment collaborator.
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment method is invalid", fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// InitialStatus derives the payment status assigned at order creation:
// cash starts pending, every other method is treated as settled up front.
func (m PaymentMethod) InitialStatus() PaymentStatus {
	if m == PaymentMethodCash {
		return PaymentStatusPending
	}
	return PaymentStatusPaid
}
