package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo.
// Quantity solo cambia vía movimientos de stock (ventas, compras, devoluciones, ajustes).
type Item struct {
	ID            string
	CompanyID     string
	Name          string
	SKU           string          // único por empresa
	Price         decimal.Decimal // precio de venta
	PurchasePrice decimal.Decimal // costo promedio ponderado de compra
	Quantity      decimal.Decimal
	MinQuantity   decimal.Decimal // umbral de stock bajo
	Category      string
	Brand         string
	Unit          string
	TaxRate       decimal.Decimal // porcentaje: 0, 5, 19...
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si la existencia está en o por debajo del mínimo configurado.
func (i *Item) IsLowStock() bool {
	return i.MinQuantity.GreaterThan(decimal.Zero) && i.Quantity.LessThanOrEqual(i.MinQuantity)
}
