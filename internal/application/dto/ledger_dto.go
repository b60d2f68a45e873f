package dto

import (
	"github.com/jhoicas/PuntoVenta-api/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// StatementResponse estado de cuenta de un cliente o proveedor.
type StatementResponse struct {
	PartyType      string          `json:"party_type"`
	PartyID        string          `json:"party_id"`
	PartyName      string          `json:"party_name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	ledger.Statement
}
