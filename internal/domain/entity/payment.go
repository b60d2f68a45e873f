package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tercero al que se asocia un pago.
const (
	PartyCustomer = "customer"
	PartySupplier = "supplier"
)

// Payment abono independiente de un cliente (PAY-0001) o pago a proveedor (SPY-0001).
type Payment struct {
	ID        string
	CompanyID string
	Code      string
	PartyType string // customer | supplier
	PartyID   string
	Amount    decimal.Decimal
	Method    string
	Note      string
	Date      time.Time
	CreatedBy string
	CreatedAt time.Time
}
