package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// Error is the uniform JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"gt=0"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"            validate:"required,min=1,dive"`
	PaymentMethod   string             `json:"payment_method"   validate:"required"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	TotalCents      int64              `json:"total_cents"      validate:"gt=0"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

type transitionOrderRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type createProductRequest struct {
	Name       string `json:"name"        validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"gt=0"`
	Quantity   int    `json:"quantity"    validate:"gte=0"`
}

type createProductResponse struct {
	ID string `json:"id"`
}

type orderItemResponse struct {
	ProductID      string `json:"product_id"`
	FarmerID       string `json:"farmer_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type orderHistoryResponse struct {
	Status    string    `json:"status"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

type orderTerminationResponse struct {
	Reason    string    `json:"reason"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

type orderResponse struct {
	ID              string                    `json:"id"`
	OrderNumber     string                    `json:"order_number"`
	ConsumerID      string                    `json:"consumer_id"`
	Status          string                    `json:"status"`
	PaymentStatus   string                    `json:"payment_status"`
	DeliveryAddress string                    `json:"delivery_address"`
	TotalCents      int64                     `json:"total_cents"`
	DeliveredAt     *time.Time                `json:"delivered_at,omitempty"`
	Items           []orderItemResponse       `json:"items"`
	History         []orderHistoryResponse    `json:"history"`
	Termination     *orderTerminationResponse `json:"termination,omitempty"`
}

type orderSummaryResponse struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	ConsumerID    string `json:"consumer_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	TotalCents    int64  `json:"total_cents"`
}

func toOrderResponse(r queries.GetOrderQueryResponse) orderResponse {
	items := make([]orderItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderItemResponse{
			ProductID:      item.ProductID.String(),
			FarmerID:       item.FarmerID.String(),
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		}
	}

	history := make([]orderHistoryResponse, len(r.History))
	for i, entry := range r.History {
		history[i] = orderHistoryResponse{
			Status:    entry.Status,
			ActorID:   entry.ActorID.String(),
			ActorRole: entry.ActorRole,
			Timestamp: entry.Timestamp,
			Reason:    entry.Reason,
		}
	}

	var termination *orderTerminationResponse
	if r.Termination != nil {
		termination = &orderTerminationResponse{
			Reason:    r.Termination.Reason,
			ActorID:   r.Termination.ActorID.String(),
			Timestamp: r.Termination.Timestamp,
		}
	}

	return orderResponse{
		ID:              r.ID.String(),
		OrderNumber:     r.OrderNumber,
		ConsumerID:      r.ConsumerID.String(),
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		DeliveryAddress: r.DeliveryAddress,
		TotalCents:      r.TotalCents,
		DeliveredAt:     r.DeliveredAt,
		Items:           items,
		History:         history,
		Termination:     termination,
	}
}

func toOrderSummaries(rows []queries.ListOrdersQueryResponse) []orderSummaryResponse {
	summaries := make([]orderSummaryResponse, len(rows))
	for i, row := range rows {
		summaries[i] = orderSummaryResponse{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			ConsumerID:    row.ConsumerID,
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			TotalCents:    row.TotalCents,
		}
	}
	return summaries
}
