package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregados de ventas válidas (excluye anuladas y devueltas) de un periodo.
type SalesMetrics struct {
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	COGS     decimal.Decimal // Σ cantidad * costo congelado en la línea
}

// TopItemResult artículo más vendido del periodo.
type TopItemResult struct {
	ItemID   string
	SKU      string
	Name     string
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
	COGS     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes y dashboard.
type ReportRepository interface {
	GetSalesMetrics(ctx context.Context, companyID string, from, to time.Time) (SalesMetrics, error)
	GetPurchasesTotal(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	GetExpensesTotal(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)
	GetTopItems(ctx context.Context, companyID string, from, to time.Time, limit int) ([]TopItemResult, error)
}
