package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para abonos de clientes y pagos a proveedores.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	ListByParty(ctx context.Context, partyType, partyID string) ([]*entity.Payment, error)
	CountByParty(ctx context.Context, partyType, partyID string) (int, error)
	Delete(ctx context.Context, id string) error
	// LastCode devuelve el último código emitido con el prefijo (PAY o SPY).
	LastCode(ctx context.Context, companyID, prefix string) (string, error)
}
