package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemFilter filtros del listado de artículos.
type ItemFilter struct {
	CompanyID string
	Search    string // coincide con nombre o SKU
	Category  string
	Brand     string
	LowStock  bool
	Limit     int
	Offset    int
}

// ItemRepository define el puerto de persistencia para artículos (DIP).
// Get* devuelve (nil, nil) cuando no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Item, error)
	// Update actualiza los datos del catálogo; nunca la cantidad.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateStock fija cantidad y costo promedio (llamar tras GetForUpdate).
	UpdateStock(ctx context.Context, id string, quantity, purchasePrice decimal.Decimal) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, int, error)
	ListLowStock(ctx context.Context, companyID string) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
	// IsReferenced indica si algún documento o movimiento usa el artículo.
	IsReferenced(ctx context.Context, id string) (bool, error)
}
