package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente. CurrentBalance es el saldo por cobrar denormalizado:
// arranca en OpeningBalance y se mueve con ventas a crédito, abonos, devoluciones y anulaciones.
type Customer struct {
	ID             string
	CompanyID      string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	Address        string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Supplier representa un proveedor. CurrentBalance es el saldo por pagar.
type Supplier struct {
	ID             string
	CompanyID      string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	Address        string
	OpeningBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
