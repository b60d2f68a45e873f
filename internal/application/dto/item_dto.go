package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. Quantity es la existencia inicial.
type CreateItemRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinQuantity   decimal.Decimal `json:"min_quantity"`
	Category      string          `json:"category" validate:"omitempty,max=100"`
	Brand         string          `json:"brand" validate:"omitempty,max=100"`
	Unit          string          `json:"unit" validate:"omitempty,max=20"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// UpdateItemRequest entrada para actualizar un artículo (sin cantidad: esa solo cambia con movimientos).
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Price         *decimal.Decimal `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	MinQuantity   *decimal.Decimal `json:"min_quantity"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	Brand         *string          `json:"brand" validate:"omitempty,max=100"`
	Unit          *string          `json:"unit" validate:"omitempty,max=20"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
}

// ItemListRequest filtros de listado.
type ItemListRequest struct {
	PageRequest
	Search   string `query:"search"`
	Category string `query:"category"`
	Brand    string `query:"brand"`
	LowStock bool   `query:"low_stock"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinQuantity   decimal.Decimal `json:"min_quantity"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Unit          string          `json:"unit"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AdjustStockRequest ajuste manual de existencias: Quantity positiva suma, negativa resta.
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason" validate:"required,min=3,max=200"`
}

// StockMovementResponse fila del kardex de un artículo.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Balance   decimal.Decimal `json:"balance"`
	Reference string          `json:"reference"`
	Note      string          `json:"note"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}
