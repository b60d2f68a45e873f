package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummaryDTO ventas, utilidad bruta y gastos de un periodo.
type PeriodSummaryDTO struct {
	SalesCount  int             `json:"sales_count"`
	Sales       decimal.Decimal `json:"sales"`        // total facturado
	GrossProfit decimal.Decimal `json:"gross_profit"` // subtotal - descuento - costo de ventas
	Expenses    decimal.Decimal `json:"expenses"`
}

// DashboardSummaryDTO respuesta de GET /api/reports/dashboard.
type DashboardSummaryDTO struct {
	Today         PeriodSummaryDTO `json:"today"`
	Month         PeriodSummaryDTO `json:"month"`
	LowStockCount int              `json:"low_stock_count"`
	Receivables   decimal.Decimal  `json:"receivables"`
	Payables      decimal.Decimal  `json:"payables"`
	TopItems      []TopItemDTO     `json:"top_items"`
	DateLabel     string           `json:"date_label"` // ej: "Febrero 2026"
}

// TopItemDTO artículo del ranking de ventas.
type TopItemDTO struct {
	ItemID           string          `json:"item_id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // (revenue - cogs) / revenue * 100
}

// ProfitLossDTO estado de resultados del periodo.
type ProfitLossDTO struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	SalesCount  int             `json:"sales_count"`
	Revenue     decimal.Decimal `json:"revenue"` // subtotal antes de impuestos
	Discount    decimal.Decimal `json:"discount"`
	NetRevenue  decimal.Decimal `json:"net_revenue"`
	Tax         decimal.Decimal `json:"tax"`
	COGS        decimal.Decimal `json:"cogs"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`
	Purchases   decimal.Decimal `json:"purchases"`
}

// LowStockItemDTO artículo en o por debajo de su mínimo.
type LowStockItemDTO struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Deficit     decimal.Decimal `json:"deficit"`
	Suggested   decimal.Decimal `json:"suggested"` // cantidad para volver al doble del mínimo
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// BalanceRowDTO fila de cartera (por cobrar o por pagar).
type BalanceRowDTO struct {
	PartyID string          `json:"party_id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceReportDTO cartera total con detalle.
type BalanceReportDTO struct {
	Total decimal.Decimal `json:"total"`
	Rows  []BalanceRowDTO `json:"rows"`
}
