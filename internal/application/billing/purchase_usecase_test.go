package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePurchase_CostoPromedioYSaldoProveedor(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addSupplier(t, "s1")
	ctx := context.Background()

	out, err := f.purchases.CreatePurchase(ctx, testCompany, testUser, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("10"), UnitPrice: decPtr("8")}},
		Payments:   []dto.PaymentLineRequest{{Amount: dec("30")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PUR-0001", out.Code)
	assert.Equal(t, entity.DocStatusPending, out.Status)
	assertDec(t, "80", out.Total)

	it := f.item(t, "a")
	assertDec(t, "20", it.Quantity)
	assertDec(t, "7", it.PurchasePrice)
	assertDec(t, "50", f.supplierBalance(t, "s1"))
}

func TestCreatePurchase_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")

	_, err := f.purchases.CreatePurchase(context.Background(), testCompany, testUser, dto.CreatePurchaseRequest{
		SupplierID: "nadie",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assertDec(t, "10", f.item(t, "a").Quantity)
}

func TestCancelPurchase_RevierteCostoYExistencias(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addSupplier(t, "s1")
	ctx := context.Background()

	p, err := f.purchases.CreatePurchase(ctx, testCompany, testUser, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("10"), UnitPrice: decPtr("8")}},
	})
	require.NoError(t, err)

	out, err := f.purchases.CancelPurchase(ctx, testCompany, testUser, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusCancelled, out.Status)

	it := f.item(t, "a")
	assertDec(t, "10", it.Quantity)
	assertDec(t, "6", it.PurchasePrice)
	assertDec(t, "0", f.supplierBalance(t, "s1"))
}

func TestCancelPurchase_MercanciaYaVendida(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "0", "10", "6")
	f.addSupplier(t, "s1")
	ctx := context.Background()

	p, err := f.purchases.CreatePurchase(ctx, testCompany, testUser, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("5")}},
	})
	require.NoError(t, err)
	_, err = f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("3")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("30")}},
	})
	require.NoError(t, err)

	_, err = f.purchases.CancelPurchase(ctx, testCompany, testUser, p.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	got, err := f.purchases.GetPurchase(ctx, testCompany, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPending, got.Status)
	assertDec(t, "2", f.item(t, "a").Quantity)
	assertDec(t, "30", f.supplierBalance(t, "s1"))
}

func TestPurchaseAddPayment(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "0", "10", "6")
	f.addSupplier(t, "s1")
	ctx := context.Background()

	p, err := f.purchases.CreatePurchase(ctx, testCompany, testUser, dto.CreatePurchaseRequest{
		SupplierID: "s1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("5")}},
	})
	require.NoError(t, err)

	out, err := f.purchases.AddPayment(ctx, testCompany, p.ID, dto.PaymentLineRequest{Amount: dec("30")})
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusFulfilled, out.Status)
	assertDec(t, "0", f.supplierBalance(t, "s1"))
}
