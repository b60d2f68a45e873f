package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldOrderRequest carrito que se deja en espera en el punto de venta.
type HoldOrderRequest struct {
	CustomerID string                `json:"customer_id,omitempty"`
	Note       string                `json:"note" validate:"omitempty,max=200"`
	Items      []DocumentLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount   decimal.Decimal       `json:"discount"`
}

// CheckoutHeldOrderRequest cobro de un carrito en espera.
type CheckoutHeldOrderRequest struct {
	Payments []PaymentLineRequest `json:"payments" validate:"dive"`
	Status   string               `json:"status,omitempty" validate:"omitempty,oneof=Fulfilled Pending"`
}

// HeldOrderResponse carrito en espera.
type HeldOrderResponse struct {
	ID         string                `json:"id"`
	CustomerID string                `json:"customer_id,omitempty"`
	Note       string                `json:"note,omitempty"`
	Items      []DocumentLineRequest `json:"items"`
	Discount   decimal.Decimal       `json:"discount"`
	CreatedBy  string                `json:"created_by"`
	HeldAt     time.Time             `json:"held_at"`
	ExpiresAt  time.Time             `json:"expires_at"`
}
