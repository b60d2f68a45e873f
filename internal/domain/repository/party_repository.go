package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PartyFilter filtros del listado de clientes y proveedores.
type PartyFilter struct {
	CompanyID string
	Search    string // nombre, NIT, email o teléfono
	Limit     int
	Offset    int
}

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Customer, error)
	List(ctx context.Context, filter PartyFilter) ([]*entity.Customer, int, error)
	// Update actualiza datos de contacto; los saldos solo cambian con AddBalance.
	Update(ctx context.Context, c *entity.Customer) error
	Delete(ctx context.Context, id string) error
	// AddBalance incrementa atómicamente el saldo (delta negativo lo reduce).
	AddBalance(ctx context.Context, id string, delta decimal.Decimal) error
	ListWithBalance(ctx context.Context, companyID string) ([]*entity.Customer, error)
}

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error)
	List(ctx context.Context, filter PartyFilter) ([]*entity.Supplier, int, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	AddBalance(ctx context.Context, id string, delta decimal.Decimal) error
	ListWithBalance(ctx context.Context, companyID string) ([]*entity.Supplier, error)
}
