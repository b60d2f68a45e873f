package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// DocumentFilter filtros del listado de ventas y compras.
type DocumentFilter struct {
	CompanyID string
	PartyID   string // cliente o proveedor
	Status    string
	Search    string // código del documento
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SaleRepository define el puerto de persistencia para ventas (cabecera, líneas y pagos).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// UpdateState persiste estado, pagado, saldo y fechas de anulación/devolución.
	UpdateState(ctx context.Context, sale *entity.Sale) error
	AddPayment(ctx context.Context, saleID string, p entity.PaymentRecord) error
	// List devuelve cabeceras (sin líneas ni pagos) y el total de registros.
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Sale, int, error)
	// ListByCustomer devuelve las ventas completas del cliente (con pagos) para el estado de cuenta.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	// LastCode devuelve el código más reciente de la empresa ("" si no hay ventas).
	LastCode(ctx context.Context, companyID string) (string, error)
}

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	UpdateState(ctx context.Context, p *entity.Purchase) error
	AddPayment(ctx context.Context, purchaseID string, pay entity.PaymentRecord) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Purchase, int, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Purchase, error)
	CountBySupplier(ctx context.Context, supplierID string) (int, error)
	LastCode(ctx context.Context, companyID string) (string, error)
}
