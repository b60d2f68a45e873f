package entity

import "time"

// Company representa la empresa (tenant) y su configuración activa: datos del
// encabezado de facturas, moneda y pie de recibo.
type Company struct {
	ID            string
	Name          string
	TaxID         string
	Address       string
	Phone         string
	Email         string
	Currency      string // ISO 4217, ej: "COP"
	ReceiptFooter string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
