package billing

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompany = "company-1"
	testUser    = "user-1"
)

type fixture struct {
	store     *memory.Store
	sales     *SaleUseCase
	purchases *PurchaseUseCase
	payments  *PaymentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{ID: testCompany, Name: "Tienda Central", Currency: "COP"}))
	return &fixture{
		store:     store,
		sales:     NewSaleUseCase(store, r.Sales, r.Customers, store.Companies(), nil),
		purchases: NewPurchaseUseCase(store, r.Purchases, r.Suppliers),
		payments:  NewPaymentUseCase(store, r.Payments, r.Customers, r.Suppliers),
	}
}

func (f *fixture) addItem(t *testing.T, id, name string, qty, price, cost string) {
	t.Helper()
	require.NoError(t, f.store.Repos().Items.Create(context.Background(), &entity.Item{
		ID:            id,
		CompanyID:     testCompany,
		Name:          name,
		SKU:           "SKU-" + id,
		Price:         dec(price),
		PurchasePrice: dec(cost),
		Quantity:      dec(qty),
		TaxRate:       decimal.Zero,
		CreatedAt:     time.Now(),
	}))
}

func (f *fixture) addCustomer(t *testing.T, id string, opening string) {
	t.Helper()
	require.NoError(t, f.store.Repos().Customers.Create(context.Background(), &entity.Customer{
		ID: id, CompanyID: testCompany, Name: "Cliente " + id,
		OpeningBalance: dec(opening), CurrentBalance: dec(opening),
	}))
}

func (f *fixture) addSupplier(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.store.Repos().Suppliers.Create(context.Background(), &entity.Supplier{
		ID: id, CompanyID: testCompany, Name: "Proveedor " + id,
		OpeningBalance: decimal.Zero, CurrentBalance: decimal.Zero,
	}))
}

func (f *fixture) item(t *testing.T, id string) *entity.Item {
	t.Helper()
	it, err := f.store.Repos().Items.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it
}

func (f *fixture) customerBalance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	c, err := f.store.Repos().Customers.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.CurrentBalance
}

func (f *fixture) supplierBalance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	s, err := f.store.Repos().Suppliers.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.CurrentBalance
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}
