// Package restorationrepo persists the durable queue of pending inventory
// restorations written alongside order cancellations.
package restorationrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

const (
	statusPending = "pending"
	statusDone    = "done"
)

// RestorationDTO represents one pending or applied stock restoration.
type RestorationDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ProductID   uuid.UUID `gorm:"type:uuid"`
	Quantity    int
	Status      string `gorm:"index"`
	Attempts    int
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// TableName specifies the database table name for restoration records.
func (RestorationDTO) TableName() string {
	return "stock_restorations"
}

// fromDomain converts a restoration record to its database representation.
func fromDomain(restoration product.Restoration) RestorationDTO {
	return RestorationDTO{
		ID:        restoration.ID,
		OrderID:   restoration.OrderID.Bytes(),
		ProductID: restoration.ProductID.Bytes(),
		Quantity:  restoration.Quantity,
		Status:    statusPending,
		Attempts:  restoration.Attempts,
		CreatedAt: restoration.CreatedAt,
	}
}

// toDomain converts a database DTO to a restoration record.
func toDomain(dto RestorationDTO) (product.Restoration, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return product.Restoration{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return product.Restoration{}, err
	}

	return product.Restoration{
		ID:        dto.ID,
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  dto.Quantity,
		Attempts:  dto.Attempts,
		CreatedAt: dto.CreatedAt,
	}, nil
}
