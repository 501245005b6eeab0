package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// RecipientResolver is a domain service that derives the subscriber set for an
// order lifecycle event. The set is never persisted; it is recomputed from the
// order's participants for every event.
//
// Business rules:
//   - The owning consumer and every distinct farmer with items in the order
//     are interested parties
//   - The actor who caused the event is excluded, so nobody is notified of
//     their own action
//   - Order of recipients is stable: consumer first, then farmers in item order
type RecipientResolver struct{}

// NewRecipientResolver creates a new RecipientResolver instance.
func NewRecipientResolver() RecipientResolver {
	return RecipientResolver{}
}

// Participants returns all interested parties for an event on the order,
// excluding the actor who triggered it.
func (RecipientResolver) Participants(o *order.Order, triggeredBy kernel.UUID) []kernel.UUID {
	recipients := make([]kernel.UUID, 0, len(o.FarmerIDs())+1)
	if !o.ConsumerID().IsEqual(triggeredBy) {
		recipients = append(recipients, o.ConsumerID())
	}
	for _, farmerID := range o.FarmerIDs() {
		if farmerID.IsEqual(triggeredBy) {
			continue
		}
		recipients = append(recipients, farmerID)
	}
	return recipients
}

// Farmers returns the distinct farmers with items in the order, excluding the
// actor who triggered the event. Used for creation events, which target the
// supplying farmers only.
func (RecipientResolver) Farmers(o *order.Order, triggeredBy kernel.UUID) []kernel.UUID {
	farmers := make([]kernel.UUID, 0, len(o.FarmerIDs()))
	for _, farmerID := range o.FarmerIDs() {
		if farmerID.IsEqual(triggeredBy) {
			continue
		}
		farmers = append(farmers, farmerID)
	}
	return farmers
}
