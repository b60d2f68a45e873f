package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento comercial (venta o compra).
const (
	DocStatusFulfilled = "Fulfilled"
	DocStatusPending   = "Pending"
	DocStatusCancelled = "Cancelled"
	DocStatusReturn    = "Return"
)

// LineItem línea de una venta o compra. UnitCost es el costo del artículo al momento
// del documento (para ventas alimenta el costo de ventas de los reportes).
type LineItem struct {
	ID        string
	ItemID    string
	ItemName  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	TaxRate   decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
	TaxAmount decimal.Decimal
}

// PaymentRecord pago embebido en un documento (pago en caja o abono posterior).
type PaymentRecord struct {
	ID        string
	Amount    decimal.Decimal
	Method    string // cash, card, transfer...
	Reference string
	Date      time.Time
}

// Sale cabecera de una venta con sus líneas y pagos.
type Sale struct {
	ID           string
	CompanyID    string
	OrderID      string // SAL-0001
	CustomerID   string // vacío = venta de mostrador
	CustomerName string
	Date         time.Time
	Lines        []LineItem
	Payments     []PaymentRecord
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Due          decimal.Decimal
	Status       string
	Note         string
	CancelledAt  *time.Time
	ReturnedAt   *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Purchase cabecera de una compra a proveedor.
type Purchase struct {
	ID           string
	CompanyID    string
	PurchaseID   string // PUR-0001
	SupplierID   string
	SupplierName string
	Date         time.Time
	Lines        []LineItem
	Payments     []PaymentRecord
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Paid         decimal.Decimal
	Due          decimal.Decimal
	Status       string
	Note         string
	CancelledAt  *time.Time
	ReturnedAt   *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SumPayments suma los montos de los pagos.
func SumPayments(payments []PaymentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// StatusAfterPayment devuelve Fulfilled si no queda saldo, Pending en otro caso.
func StatusAfterPayment(due decimal.Decimal) string {
	if due.IsPositive() {
		return DocStatusPending
	}
	return DocStatusFulfilled
}
