package pos

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// HeldOrderStore almacén temporal de carritos en espera (Redis o memoria).
// Get devuelve (nil, nil) si no existe o ya venció.
type HeldOrderStore interface {
	Save(ctx context.Context, order *entity.HeldOrder, ttl time.Duration) error
	Get(ctx context.Context, companyID, id string) (*entity.HeldOrder, error)
	List(ctx context.Context, companyID string) ([]*entity.HeldOrder, error)
	Delete(ctx context.Context, companyID, id string) error
}

// Locker candado distribuido por clave. Obtain devuelve domain.ErrLocked si otro proceso lo tiene.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// SaleCreator crea la venta al cobrar un carrito en espera.
type SaleCreator interface {
	CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.DocumentResponse, error)
}
