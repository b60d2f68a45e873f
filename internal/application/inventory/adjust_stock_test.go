package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "company-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAdjustFixture(t *testing.T) (*AdjustStockUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	require.NoError(t, r.Items.Create(context.Background(), &entity.Item{
		ID: "a", CompanyID: companyID, Name: "Arroz", SKU: "ARZ", PurchasePrice: dec("6"), Quantity: dec("4"),
	}))
	return NewAdjustStockUseCase(store, r.Items, r.Movements), store
}

func TestAdjustStock(t *testing.T) {
	uc, store := newAdjustFixture(t)
	ctx := context.Background()

	up, err := uc.AdjustStock(ctx, companyID, "u", "a", dto.AdjustStockRequest{Quantity: dec("6"), Reason: "conteo físico"})
	require.NoError(t, err)
	assert.NotEmpty(t, up.ID)
	assert.True(t, dec("10").Equal(up.Balance))
	assert.True(t, dec("6").Equal(up.UnitCost))

	down, err := uc.AdjustStock(ctx, companyID, "u", "a", dto.AdjustStockRequest{Quantity: dec("-3"), Reason: "merma"})
	require.NoError(t, err)
	assert.True(t, dec("-3").Equal(down.Quantity))

	it, err := store.Repos().Items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(it.Quantity))

	movs, err := uc.ListMovements(ctx, companyID, "a", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, down.ID, movs[0].ID)
}

func TestAdjustStock_NuncaNegativo(t *testing.T) {
	uc, store := newAdjustFixture(t)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, companyID, "u", "a", dto.AdjustStockRequest{Quantity: dec("-5"), Reason: "merma"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Arroz (disponible 4, solicitado 5)")

	it, err := store.Repos().Items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, dec("4").Equal(it.Quantity))
	movs, err := store.Repos().Movements.ListByItem(ctx, "a", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAdjustStock_Validaciones(t *testing.T) {
	uc, _ := newAdjustFixture(t)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, companyID, "u", "a", dto.AdjustStockRequest{Quantity: decimal.Zero, Reason: "nada"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.AdjustStock(ctx, "otra", "u", "a", dto.AdjustStockRequest{Quantity: dec("1"), Reason: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSortByItem(t *testing.T) {
	changes := []StockChange{{ItemID: "c"}, {ItemID: "a"}, {ItemID: "b"}}
	SortByItem(changes)
	assert.Equal(t, []string{"a", "b", "c"}, []string{changes[0].ItemID, changes[1].ItemID, changes[2].ItemID})
}
