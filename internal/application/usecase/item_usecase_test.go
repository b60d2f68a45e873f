package usecase

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

func TestItemCreate_ExistenciaInicialComoMovimiento(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repos().Items, store)
	ctx := context.Background()

	out, err := uc.Create(ctx, companyID, "u", dto.CreateItemRequest{
		Name: "Arroz", SKU: " ARZ-1 ", Price: dec("10"), PurchasePrice: dec("6"), Quantity: dec("12"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ARZ-1", out.SKU)
	assert.Equal(t, "und", out.Unit)

	movs, err := store.Repos().Movements.ListByItem(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAdjustment, movs[0].Type)
	assert.Equal(t, "INVENTARIO INICIAL", movs[0].Reference)

	_, err = uc.Create(ctx, companyID, "u", dto.CreateItemRequest{Name: "Otro", SKU: "ARZ-1"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestItemCreate_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repos().Items, store)

	tests := []struct {
		name string
		in   dto.CreateItemRequest
	}{
		{"precio negativo", dto.CreateItemRequest{Name: "A", SKU: "A", Price: dec("-1")}},
		{"existencia negativa", dto.CreateItemRequest{Name: "A", SKU: "A", Quantity: dec("-1")}},
		{"impuesto mayor a 100", dto.CreateItemRequest{Name: "A", SKU: "A", TaxRate: dec("101")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), companyID, "u", tt.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestItemUpdate_NoCambiaCantidad(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repos().Items, store)
	ctx := context.Background()

	created, err := uc.Create(ctx, companyID, "u", dto.CreateItemRequest{Name: "Arroz", SKU: "ARZ", Quantity: dec("5")})
	require.NoError(t, err)

	name := "Arroz blanco"
	minQty := dec("8")
	out, err := uc.Update(ctx, companyID, created.ID, dto.UpdateItemRequest{Name: &name, MinQuantity: &minQty})
	require.NoError(t, err)
	assert.Equal(t, "Arroz blanco", out.Name)
	assert.True(t, dec("5").Equal(out.Quantity))
	assert.True(t, out.LowStock)

	low, err := uc.List(ctx, companyID, dto.ItemListRequest{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, 1, low.Page.Total)

	_, err = uc.Update(ctx, "otra", created.ID, dto.UpdateItemRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestItemList_Busqueda(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repos().Items, store)
	ctx := context.Background()
	for _, in := range []dto.CreateItemRequest{
		{Name: "Arroz", SKU: "ARZ", Category: "granos"},
		{Name: "Frijol", SKU: "FRJ", Category: "granos"},
		{Name: "Jabón", SKU: "JAB", Category: "aseo"},
	} {
		_, err := uc.Create(ctx, companyID, "u", in)
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, companyID, dto.ItemListRequest{Category: "granos"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	assert.Equal(t, "Arroz", out.Items[0].Name)

	out, err = uc.List(ctx, companyID, dto.ItemListRequest{Search: "jab"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "JAB", out.Items[0].SKU)
}

func TestItemDelete_ConHistorial(t *testing.T) {
	store := memory.NewStore()
	uc := NewItemUseCase(store.Repos().Items, store)
	ctx := context.Background()

	withStock, err := uc.Create(ctx, companyID, "u", dto.CreateItemRequest{Name: "Arroz", SKU: "ARZ", Quantity: dec("1")})
	require.NoError(t, err)
	empty, err := uc.Create(ctx, companyID, "u", dto.CreateItemRequest{Name: "Sal", SKU: "SAL"})
	require.NoError(t, err)

	assert.True(t, errors.Is(uc.Delete(ctx, companyID, withStock.ID), domain.ErrConflict))
	assert.NoError(t, uc.Delete(ctx, companyID, empty.ID))
	_, err = uc.GetByID(ctx, companyID, empty.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
