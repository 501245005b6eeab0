// Package productrepo provides persistence for product aggregates and the
// inventory ledger's atomic stock adjustments.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products.
// quantity_available is never written by application-level check-then-write:
// all adjustments go through conditional updates in the repository.
type ProductDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	FarmerID          uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	PriceCents        int64
	QuantityAvailable int
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:                aggregate.ID().Bytes(),
		FarmerID:          aggregate.FarmerID().Bytes(),
		Name:              aggregate.Name(),
		PriceCents:        aggregate.Price().Cents(),
		QuantityAvailable: aggregate.QuantityAvailable(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, farmerID, dto.Name, price, dto.QuantityAvailable)
}
