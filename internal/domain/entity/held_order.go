package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// HeldOrder carrito en espera del punto de venta. Vive en un almacén temporal
// (Redis o memoria) con vencimiento; no se persiste en la base de datos.
type HeldOrder struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	CreatedBy  string          `json:"created_by"`
	CustomerID string          `json:"customer_id,omitempty"`
	Note       string          `json:"note,omitempty"`
	Lines      []HeldOrderLine `json:"lines"`
	Discount   decimal.Decimal `json:"discount"`
	HeldAt     time.Time       `json:"held_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

// HeldOrderLine línea del carrito en espera; UnitPrice nil = precio del catálogo.
type HeldOrderLine struct {
	ItemID    string           `json:"item_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}
