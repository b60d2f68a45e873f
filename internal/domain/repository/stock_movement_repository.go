package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del kardex de artículos.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
