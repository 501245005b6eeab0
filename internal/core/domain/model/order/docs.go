// Package order provides domain entities and business logic for order management
// in the fulfillment system. It implements the Order aggregate root with lifecycle
// management and role-gated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, history and lifecycle
//   - Item: An immutable order line with a price snapshot taken at creation
//   - Status: A state machine whose transitions depend on the requesting actor's role
//   - PaymentStatus / PaymentMethod: The independent payment axis
//
// Key business rules:
//   - Orders must have a valid identifier, owning consumer and at least one item
//   - The total amount always equals the sum of quantity times unit price
//   - Status transitions follow the per-role table; denied edges never mutate state
//   - The status history is append-only and serves as the audit trail
//   - Cancellation and rejection are mutually exclusive and recorded at most once
//   - Orders are never physically deleted
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
