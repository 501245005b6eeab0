// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Items and history rows live in their own tables keyed by the order ID; the
// version column carries the optimistic concurrency token.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        string     `gorm:"uniqueIndex"`
	ConsumerID         uuid.UUID  `gorm:"type:uuid;index"`
	Status             string     `gorm:"index"`
	PaymentStatus      string
	DeliveryAddress    string
	TerminationReason  *string
	TerminationActorID *uuid.UUID `gorm:"type:uuid"`
	TerminatedAt       *time.Time
	DeliveredAt        *time.Time
	Version            int

	Items   []OrderItemDTO    `gorm:"foreignKey:OrderID;references:ID"`
	History []HistoryEntryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one order line with its price and farmer
// attribution snapshotted at order time. Immutable after creation.
type OrderItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Idx            int       `gorm:"primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid"`
	FarmerID       uuid.UUID `gorm:"type:uuid;index"`
	Quantity       int
	UnitPriceCents int64
}

// TableName specifies the database table name for order items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// HistoryEntryDTO represents one recorded status change.
// The (order_id, seq) key makes the log append-only: persisted entries are
// never rewritten, new entries only ever extend the sequence.
type HistoryEntryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     string
	ActorID    uuid.UUID `gorm:"type:uuid"`
	ActorRole  string
	OccurredAt time.Time
	Reason     string
}

// TableName specifies the database table name for order history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		ConsumerID:      aggregate.ConsumerID().Bytes(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveredAt:     aggregate.DeliveredAt(),
		Version:         aggregate.Version(),
	}

	if termination := aggregate.Termination(); termination != nil {
		reason := termination.Reason
		actorID := termination.ActorID.Bytes()
		at := termination.Timestamp
		dto.TerminationReason = &reason
		dto.TerminationActorID = &actorID
		dto.TerminatedAt = &at
	}

	for i, item := range aggregate.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:        dto.ID,
			Idx:            i,
			ProductID:      item.ProductID().Bytes(),
			FarmerID:       item.FarmerID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	for i, entry := range aggregate.History() {
		dto.History = append(dto.History, HistoryEntryDTO{
			OrderID:    dto.ID,
			Seq:        i,
			Status:     entry.Status.String(),
			ActorID:    entry.ActorID.Bytes(),
			ActorRole:  entry.ActorRole.String(),
			OccurredAt: entry.Timestamp,
			Reason:     entry.Reason,
		})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, history and the
// termination record using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	consumerID, err := kernel.UUIDFromBytes(dto.ConsumerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	var termination *order.Termination
	if dto.TerminationReason != nil && dto.TerminationActorID != nil && dto.TerminatedAt != nil {
		actorID, actorErr := kernel.UUIDFromBytes((*dto.TerminationActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}

		termination = &order.Termination{
			Reason:    *dto.TerminationReason,
			ActorID:   actorID,
			Timestamp: *dto.TerminatedAt,
		}
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		consumerID,
		items,
		status,
		paymentStatus,
		dto.DeliveryAddress,
		history,
		termination,
		dto.DeliveredAt,
		dto.Version,
	)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}

		farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
		if err != nil {
			return nil, err
		}

		price, err := kernel.NewMoney(dto.UnitPriceCents)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(productID, farmerID, dto.Quantity, price)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func historyToDomain(dtos []HistoryEntryDTO) ([]order.HistoryEntry, error) {
	history := make([]order.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}

		role, err := actor.RoleFromString(dto.ActorRole)
		if err != nil {
			return nil, err
		}

		actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
		if err != nil {
			return nil, err
		}

		history = append(history, order.HistoryEntry{
			Status:    status,
			ActorID:   actorID,
			ActorRole: role,
			Timestamp: dto.OccurredAt,
			Reason:    dto.Reason,
		})
	}

	return history, nil
}
