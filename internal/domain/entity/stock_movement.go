package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementSale           = "SALE"
	MovementSaleReturn     = "SALE_RETURN"
	MovementSaleCancel     = "SALE_CANCEL"
	MovementPurchase       = "PURCHASE"
	MovementPurchaseReturn = "PURCHASE_RETURN"
	MovementPurchaseCancel = "PURCHASE_CANCEL"
	MovementAdjustment     = "ADJUSTMENT"
)

// StockMovement registra cada cambio de existencia de un artículo.
// Quantity es positiva para entradas y negativa para salidas; Balance es la existencia resultante.
type StockMovement struct {
	ID        string
	CompanyID string
	ItemID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Balance   decimal.Decimal
	Reference string // código del documento (SAL-0001, PUR-0001) o motivo del ajuste
	Note      string
	CreatedBy string
	CreatedAt time.Time
}
