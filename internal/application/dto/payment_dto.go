package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest abono de un cliente o pago a un proveedor.
type RecordPaymentRequest struct {
	PartyID string          `json:"party_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"method" validate:"omitempty,oneof=cash card transfer other"`
	Note    string          `json:"note" validate:"omitempty,max=300"`
	Date    *time.Time      `json:"date,omitempty"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	PartyType string          `json:"party_type"`
	PartyID   string          `json:"party_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Note      string          `json:"note"`
	Date      time.Time       `json:"date"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
