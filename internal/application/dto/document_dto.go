package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de venta o compra. UnitPrice nil = precio de venta (ventas)
// o costo vigente (compras) del artículo.
type DocumentLineRequest struct {
	ItemID    string           `json:"item_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// PaymentLineRequest pago registrado junto con el documento o como abono posterior.
type PaymentLineRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method" validate:"omitempty,oneof=cash card transfer credit other"`
	Reference string          `json:"reference" validate:"omitempty,max=100"`
	Date      *time.Time      `json:"date,omitempty"`
}

// CreateSaleRequest entrada para crear una venta. CustomerID vacío = venta de mostrador.
type CreateSaleRequest struct {
	CustomerID string                `json:"customer_id,omitempty"`
	Date       *time.Time            `json:"date,omitempty"`
	Items      []DocumentLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount   decimal.Decimal       `json:"discount"`
	Payments   []PaymentLineRequest  `json:"payments" validate:"dive"`
	Status     string                `json:"status,omitempty" validate:"omitempty,oneof=Fulfilled Pending"`
	Note       string                `json:"note" validate:"omitempty,max=500"`
}

// CreatePurchaseRequest entrada para registrar una compra a proveedor.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Date       *time.Time            `json:"date,omitempty"`
	Items      []DocumentLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount   decimal.Decimal       `json:"discount"`
	Payments   []PaymentLineRequest  `json:"payments" validate:"dive"`
	Note       string                `json:"note" validate:"omitempty,max=500"`
}

// DocumentListRequest filtros del listado de ventas o compras.
type DocumentListRequest struct {
	PageRequest
	PartyID string `query:"party_id"`
	Status  string `query:"status" validate:"omitempty,oneof=Fulfilled Pending Cancelled Return"`
	Search  string `query:"search"`
	DateRange
}

// DocumentLineResponse línea del documento.
type DocumentLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
}

// PaymentLineResponse pago embebido del documento.
type PaymentLineResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	Date      time.Time       `json:"date"`
}

// DocumentResponse salida de una venta (Code = SAL-nnnn) o compra (Code = PUR-nnnn).
type DocumentResponse struct {
	ID          string                 `json:"id"`
	Code        string                 `json:"code"`
	PartyID     string                 `json:"party_id,omitempty"`
	PartyName   string                 `json:"party_name"`
	Date        time.Time              `json:"date"`
	Lines       []DocumentLineResponse `json:"lines,omitempty"`
	Payments    []PaymentLineResponse  `json:"payments,omitempty"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	TaxTotal    decimal.Decimal        `json:"tax_total"`
	Discount    decimal.Decimal        `json:"discount"`
	Total       decimal.Decimal        `json:"total"`
	Paid        decimal.Decimal        `json:"paid"`
	Due         decimal.Decimal        `json:"due"`
	Status      string                 `json:"status"`
	Note        string                 `json:"note,omitempty"`
	CancelledAt *time.Time             `json:"cancelled_at,omitempty"`
	ReturnedAt  *time.Time             `json:"returned_at,omitempty"`
	CreatedBy   string                 `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
