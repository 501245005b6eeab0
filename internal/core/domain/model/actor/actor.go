// Package actor provides the authenticated actor context passed into every
// lifecycle operation. The fulfillment core trusts this context; credential
// verification is the identity collaborator's responsibility.
package actor

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory function.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role identifies which party of the marketplace an actor belongs to.
// Roles gate order status transitions and cancellation scope.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleConsumer is a buyer who creates orders and may cancel their own
	// orders while they are still pending or confirmed.
	RoleConsumer

	// RoleFarmer is a seller whose products appear in order items.
	// Farmers drive the forward fulfillment flow and may reject orders.
	RoleFarmer

	// RoleAdmin is a marketplace operator with the widest transition rights,
	// including the post-delivery cancellation override for disputes.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleConsumer: "consumer",
		RoleFarmer:   "farmer",
		RoleAdmin:    "admin",
	}
}

// getValidRoleStrings returns only valid Role values to support validation.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleConsumer: "consumer",
		RoleFarmer:   "farmer",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role name as supplied by the identity collaborator.
// Returns an error for unrecognized names.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are: RoleConsumer, RoleFarmer, RoleAdmin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the lowercase role name.
// This method implements the fmt.Stringer interface and is safe to call on
// any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor is the authenticated caller of a lifecycle operation: an identifier
// plus the marketplace role it acts under. Actor is an immutable value object.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates an actor context from a validated id and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		isConstructed: true,
	}, nil
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's marketplace role.
func (a Actor) Role() Role {
	return a.role
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}
