package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSale_ExistenciaInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "3", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()

	_, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("5")}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Arroz (disponible 3, solicitado 5)")

	assertDec(t, "3", f.item(t, "a").Quantity)
	assertDec(t, "0", f.customerBalance(t, "c1"))
	list, total, err := f.store.Repos().Sales.List(ctx, repository.DocumentFilter{CompanyID: testCompany})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestCreateSale_DescuentaExistenciasYCargaSaldo(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "3", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()

	out, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("2")}},
		Payments:   []dto.PaymentLineRequest{{Amount: dec("5")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SAL-0001", out.Code)
	assert.Equal(t, entity.DocStatusPending, out.Status)
	assertDec(t, "20", out.Total)
	assertDec(t, "15", out.Due)

	assertDec(t, "1", f.item(t, "a").Quantity)
	assertDec(t, "15", f.customerBalance(t, "c1"))

	movs, err := f.store.Repos().Movements.ListByItem(ctx, "a", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementSale, movs[0].Type)
	assertDec(t, "-2", movs[0].Quantity)
}

func TestCreateSale_CodigosConsecutivos(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("10")}},
	}

	first, err := f.sales.CreateSale(ctx, testCompany, testUser, req)
	require.NoError(t, err)
	second, err := f.sales.CreateSale(ctx, testCompany, testUser, req)
	require.NoError(t, err)

	assert.Equal(t, "SAL-0001", first.Code)
	assert.Equal(t, "SAL-0002", second.Code)
	assert.Equal(t, "Cliente de mostrador", first.PartyName)
	assert.Equal(t, entity.DocStatusFulfilled, first.Status)
}

func TestCreateSale_ContinuaDesdeCodigoExistente(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	ctx := context.Background()
	require.NoError(t, f.store.Repos().Sales.Create(ctx, &entity.Sale{
		ID: "antigua", CompanyID: testCompany, OrderID: "SAL-0042", Status: entity.DocStatusFulfilled,
	}))
	req := dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("10")}},
	}

	first, err := f.sales.CreateSale(ctx, testCompany, testUser, req)
	require.NoError(t, err)
	second, err := f.sales.CreateSale(ctx, testCompany, testUser, req)
	require.NoError(t, err)

	assert.Equal(t, "SAL-0043", first.Code)
	assert.Equal(t, "SAL-0044", second.Code)
}

func TestCreateSale_LineasRepetidasSeSumanAlValidar(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "3", "10", "6")
	f.addCustomer(t, "c1", "0")

	_, err := f.sales.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items: []dto.DocumentLineRequest{
			{ItemID: "a", Quantity: dec("2")},
			{ItemID: "a", Quantity: dec("2")},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assertDec(t, "3", f.item(t, "a").Quantity)
}

func TestCreateSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addCustomer(t, "c1", "0")

	tests := []struct {
		name string
		req  dto.CreateSaleRequest
		want error
	}{
		{"sin líneas", dto.CreateSaleRequest{CustomerID: "c1"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{CustomerID: "c1", Items: []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("0")}}}, domain.ErrInvalidInput},
		{"artículo inexistente", dto.CreateSaleRequest{CustomerID: "c1", Items: []dto.DocumentLineRequest{{ItemID: "zz", Quantity: dec("1")}}}, domain.ErrNotFound},
		{"cliente inexistente", dto.CreateSaleRequest{CustomerID: "nadie", Items: []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}}}, domain.ErrNotFound},
		{"mostrador sin pagar", dto.CreateSaleRequest{Items: []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}}}, domain.ErrInvalidInput},
		{"pago mayor al total", dto.CreateSaleRequest{
			CustomerID: "c1",
			Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
			Payments:   []dto.PaymentLineRequest{{Amount: dec("11")}},
		}, domain.ErrInvalidInput},
		{"completada con saldo", dto.CreateSaleRequest{
			CustomerID: "c1",
			Status:     entity.DocStatusFulfilled,
			Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		}, domain.ErrInvalidInput},
		{"descuento mayor al total", dto.CreateSaleRequest{
			CustomerID: "c1",
			Discount:   dec("50"),
			Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sales.CreateSale(context.Background(), testCompany, testUser, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
	assertDec(t, "10", f.item(t, "a").Quantity)
}

func TestCreateSale_PrecioExplicitoEImpuesto(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	ctx := context.Background()
	it := f.item(t, "a")
	it.TaxRate = dec("19")
	require.NoError(t, f.store.Repos().Items.Update(ctx, it))

	out, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("2"), UnitPrice: decPtr("50")}},
		Discount: dec("9"),
		Payments: []dto.PaymentLineRequest{{Amount: dec("110")}},
	})
	require.NoError(t, err)
	assertDec(t, "100", out.Subtotal)
	assertDec(t, "19", out.TaxTotal)
	assertDec(t, "110", out.Total)
	assertDec(t, "0", out.Due)
}

func TestAddPayment_SaldaLaVenta(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()

	sale, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("3")}},
	})
	require.NoError(t, err)

	_, err = f.sales.AddPayment(ctx, testCompany, sale.ID, dto.PaymentLineRequest{Amount: dec("40")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	out, err := f.sales.AddPayment(ctx, testCompany, sale.ID, dto.PaymentLineRequest{Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusPending, out.Status)
	assertDec(t, "20", f.customerBalance(t, "c1"))

	out, err = f.sales.AddPayment(ctx, testCompany, sale.ID, dto.PaymentLineRequest{Amount: dec("20")})
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusFulfilled, out.Status)
	assert.Len(t, out.Payments, 2)
	assertDec(t, "0", f.customerBalance(t, "c1"))

	_, err = f.sales.AddPayment(ctx, testCompany, sale.ID, dto.PaymentLineRequest{Amount: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCancelSale_ReintegraYDescuentaSaldo(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()

	sale, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("4")}},
		Payments:   []dto.PaymentLineRequest{{Amount: dec("15")}},
	})
	require.NoError(t, err)
	assertDec(t, "25", f.customerBalance(t, "c1"))

	out, err := f.sales.CancelSale(ctx, testCompany, testUser, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusCancelled, out.Status)
	assert.NotNil(t, out.CancelledAt)
	assertDec(t, "10", f.item(t, "a").Quantity)
	assertDec(t, "0", f.customerBalance(t, "c1"))

	_, err = f.sales.ReturnSale(ctx, testCompany, testUser, sale.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestReturnSale_AcreditaElTotal(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()

	sale, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("2")}},
		Payments:   []dto.PaymentLineRequest{{Amount: dec("20")}},
	})
	require.NoError(t, err)

	out, err := f.sales.ReturnSale(ctx, testCompany, testUser, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusReturn, out.Status)
	assertDec(t, "10", f.item(t, "a").Quantity)
	assertDec(t, "-20", f.customerBalance(t, "c1"))
}

func TestGetSale_OtraEmpresa(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	ctx := context.Background()
	sale, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("10")}},
	})
	require.NoError(t, err)

	got, err := f.sales.GetSale(ctx, testCompany, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Code, got.Code)
	require.Len(t, got.Lines, 1)

	_, err = f.sales.GetSale(ctx, "otra", sale.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListSales_Filtros(t *testing.T) {
	f := newFixture(t)
	f.addItem(t, "a", "Arroz", "10", "10", "6")
	f.addCustomer(t, "c1", "0")
	ctx := context.Background()
	_, err := f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		CustomerID: "c1",
		Items:      []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	_, err = f.sales.CreateSale(ctx, testCompany, testUser, dto.CreateSaleRequest{
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("10")}},
	})
	require.NoError(t, err)

	all, err := f.sales.ListSales(ctx, testCompany, dto.DocumentListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)

	pending, err := f.sales.ListSales(ctx, testCompany, dto.DocumentListRequest{Status: entity.DocStatusPending})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "c1", pending.Items[0].PartyID)
}
