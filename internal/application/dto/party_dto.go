package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartyRequest entrada para crear un cliente o proveedor.
type CreatePartyRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	TaxID          string          `json:"tax_id" validate:"omitempty,max=30"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone" validate:"omitempty,max=30"`
	Address        string          `json:"address" validate:"omitempty,max=300"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdatePartyRequest datos de contacto editables (los saldos no se editan).
type UpdatePartyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// PartyListRequest filtros del listado.
type PartyListRequest struct {
	PageRequest
	Search string `query:"search"`
}

// PartyResponse salida de un cliente o proveedor.
type PartyResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	Name           string          `json:"name"`
	TaxID          string          `json:"tax_id"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PartyListResponse lista paginada de clientes o proveedores.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
