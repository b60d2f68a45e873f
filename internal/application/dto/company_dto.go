package dto

import "time"

// UpdateCompanyRequest entrada para actualizar la configuración de la empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID         *string `json:"tax_id" validate:"omitempty,max=30"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Currency      *string `json:"currency" validate:"omitempty,len=3"`
	ReceiptFooter *string `json:"receipt_footer" validate:"omitempty,max=500"`
}

// CompanyResponse configuración activa de la empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Currency      string    `json:"currency"`
	ReceiptFooter string    `json:"receipt_footer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
