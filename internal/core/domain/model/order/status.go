package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a role-gated state machine: which transitions are allowed
// depends on both the current status and the role of the requesting actor.
//
// State transitions (union over all roles):
//
//	Pending ────┬──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	            │        │              │                         │
//	            └────────┴──────────────┴──> Cancelled <──────────┘ (admin only)
//	            │        │              │
//	            └────────┴──────────────┴──> Rejected
//
// Cancelled and Rejected are terminal. The admin-only Delivered -> Cancelled
// edge is the dispute override and is intentionally asymmetric.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned at order creation.
	StatusPending

	// StatusConfirmed indicates a farmer or admin accepted the order.
	StatusConfirmed

	// StatusProcessing indicates the order is being prepared.
	StatusProcessing

	// StatusShipped indicates the order left the farm.
	StatusShipped

	// StatusDelivered indicates the order reached the consumer.
	// Terminal except for the admin dispute override.
	StatusDelivered

	// StatusCancelled indicates a consumer or admin terminated the order.
	// This is a final state with no further transitions allowed.
	StatusCancelled

	// StatusRejected indicates a farmer terminated the order.
	// This is a final state with no further transitions allowed.
	StatusRejected
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusProcessing: "processing",
		StatusShipped:    "shipped",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
		StatusRejected:   "rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "pending",
		StatusConfirmed:  "confirmed",
		StatusProcessing: "processing",
		StatusShipped:    "shipped",
		StatusDelivered:  "delivered",
		StatusCancelled:  "cancelled",
		StatusRejected:   "rejected",
	}
}

// getRoleTransitions returns the fixed per-role transition table.
// Any (role, from, to) triple absent from the table is denied.
//
// The admin Delivered -> Cancelled edge is an intentional override for
// dispute resolution and must not be removed.
func getRoleTransitions() map[actor.Role]map[Status][]Status {
	return map[actor.Role]map[Status][]Status{
		actor.RoleConsumer: {
			StatusPending:   {StatusCancelled},
			StatusConfirmed: {StatusCancelled},
		},
		actor.RoleFarmer: {
			StatusPending:    {StatusConfirmed, StatusRejected},
			StatusConfirmed:  {StatusProcessing, StatusRejected},
			StatusProcessing: {StatusShipped, StatusRejected},
			StatusShipped:    {StatusDelivered},
		},
		actor.RoleAdmin: {
			StatusPending:    {StatusConfirmed, StatusCancelled, StatusRejected},
			StatusConfirmed:  {StatusProcessing, StatusCancelled, StatusRejected},
			StatusProcessing: {StatusShipped, StatusCancelled, StatusRejected},
			StatusShipped:    {StatusDelivered},
			StatusDelivered:  {StatusCancelled},
		},
	}
}

// StatusFromString parses a status name. Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase status name.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no role has an outbound transition from the
// status other than the admin dispute override on Delivered.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRejected || s == StatusDelivered
}

// IsCancellable reports whether the status is inside the cancellable set
// used by the compound cancel/reject operation.
func (s Status) IsCancellable() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusProcessing
}

// CanTransitionTo reports whether an actor with the given role may move an
// order from the current status to the target status.
//
// The function is pure, stateless and total: it never panics and returns
// false for any pair absent from the transition table, including invalid
// statuses and roles. Callers treat false as an authorization failure, not
// a system error.
func (s Status) CanTransitionTo(target Status, role actor.Role) bool {
	byStatus, ok := getRoleTransitions()[role]
	if !ok {
		return false
	}

	allowed, ok := byStatus[s]
	if !ok {
		return false
	}

	for _, to := range allowed {
		if to == target {
			return true
		}
	}
	return false
}
