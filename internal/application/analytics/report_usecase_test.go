package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "company-1"

var fixedNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedReports deja: venta de 5 arroces (100, costo 60) pendiente de 40 y otra anulada,
// un gasto de 15 y un artículo bajo el mínimo.
func seedReports(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	require.NoError(t, r.Items.Create(ctx, &entity.Item{
		ID: "a", CompanyID: companyID, Name: "Arroz", SKU: "ARZ",
		Price: dec("20"), PurchasePrice: dec("12"), Quantity: dec("10"), MinQuantity: dec("2"),
	}))
	require.NoError(t, r.Items.Create(ctx, &entity.Item{
		ID: "b", CompanyID: companyID, Name: "Sal", SKU: "SAL",
		Price: dec("3"), PurchasePrice: dec("1"), Quantity: dec("1"), MinQuantity: dec("4"),
	}))
	require.NoError(t, r.Customers.Create(ctx, &entity.Customer{ID: "c1", CompanyID: companyID, Name: "Ana"}))

	sales := billing.NewSaleUseCase(store, r.Sales, r.Customers, store.Companies(), nil)
	date := fixedNow.Add(-time.Hour)
	_, err := sales.CreateSale(ctx, companyID, "u", dto.CreateSaleRequest{
		CustomerID: "c1", Date: &date,
		Items:    []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("5")}},
		Payments: []dto.PaymentLineRequest{{Amount: dec("60")}},
	})
	require.NoError(t, err)
	cancelled, err := sales.CreateSale(ctx, companyID, "u", dto.CreateSaleRequest{
		CustomerID: "c1", Date: &date,
		Items: []dto.DocumentLineRequest{{ItemID: "a", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	_, err = sales.CancelSale(ctx, companyID, "u", cancelled.ID)
	require.NoError(t, err)

	expenses := r.Expenses
	require.NoError(t, expenses.Create(ctx, &entity.Expense{ID: "e1", CompanyID: companyID, Code: "EXP-0001", Category: "Servicios", Amount: dec("15"), Date: date}))
	return store
}

func newReports(store *memory.Store) *ReportUseCase {
	r := store.Repos()
	return NewReportUseCase(store.Reports(), r.Items, r.Customers, r.Suppliers)
}

func TestProfitLoss(t *testing.T) {
	uc := newReports(seedReports(t))
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 23, 59, 59, 0, time.UTC)

	out, err := uc.ProfitLoss(context.Background(), companyID, from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, out.SalesCount)
	assert.True(t, dec("100").Equal(out.Revenue))
	assert.True(t, dec("60").Equal(out.COGS))
	assert.True(t, dec("40").Equal(out.GrossProfit))
	assert.True(t, dec("25").Equal(out.NetProfit))

	_, err = uc.ProfitLoss(context.Background(), companyID, to, from)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTopItemsYLowStock(t *testing.T) {
	uc := newReports(seedReports(t))
	ctx := context.Background()

	top, err := uc.TopItems(ctx, companyID, fixedNow.AddDate(0, -1, 0), fixedNow, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "ARZ", top[0].SKU)
	assert.True(t, dec("40").Equal(top[0].MarginPercentage))

	low, err := uc.LowStock(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "b", low[0].ItemID)
	assert.True(t, dec("3").Equal(low[0].Deficit))
	assert.True(t, dec("7").Equal(low[0].Suggested))
}

func TestReceivables(t *testing.T) {
	uc := newReports(seedReports(t))
	rep, err := uc.Receivables(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, rep.Rows, 1)
	assert.True(t, dec("40").Equal(rep.Total))

	pay, err := uc.Payables(context.Background(), companyID)
	require.NoError(t, err)
	assert.Empty(t, pay.Rows)
}

func TestDashboardSummary(t *testing.T) {
	store := seedReports(t)
	r := store.Repos()
	uc := NewDashboardUseCase(store.Reports(), r.Items, r.Customers, r.Suppliers)
	uc.now = func() time.Time { return fixedNow }

	out, err := uc.GetSummary(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Today.SalesCount)
	assert.True(t, dec("100").Equal(out.Month.Sales))
	assert.True(t, dec("40").Equal(out.Month.GrossProfit))
	assert.True(t, dec("15").Equal(out.Today.Expenses))
	assert.Equal(t, 1, out.LowStockCount)
	assert.True(t, dec("40").Equal(out.Receivables))
	assert.Equal(t, "Mayo 2024", out.DateLabel)
	require.Len(t, out.TopItems, 1)
}
