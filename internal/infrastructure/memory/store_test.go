package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_RevierteSiFalla(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Repos().Items.Create(ctx, &entity.Item{ID: "a", CompanyID: "c", SKU: "A", Quantity: decimal.NewFromInt(5)}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Items.UpdateStock(ctx, "a", decimal.NewFromInt(1), decimal.Zero); err != nil {
			return err
		}
		if err := r.Sequences.Save(ctx, "c", "SAL", 7); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	it, err := s.Repos().Items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(it.Quantity))
	last, seeded, err := s.Repos().Sequences.Lock(ctx, "c", "SAL")
	require.NoError(t, err)
	assert.Zero(t, last)
	assert.False(t, seeded)
}

func TestRun_PublicaSiTermina(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	err := s.Run(ctx, func(r repository.TxRepos) error {
		return r.Sequences.Save(ctx, "c", "SAL", 3)
	})
	require.NoError(t, err)
	last, seeded, err := s.Repos().Sequences.Lock(ctx, "c", "SAL")
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)
	assert.True(t, seeded)
}

func TestSaleRepository_CopiasIndependientes(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	sale := &entity.Sale{ID: "s1", CompanyID: "c", OrderID: "SAL-0001", Lines: []entity.LineItem{{ItemID: "a"}}}
	require.NoError(t, s.Repos().Sales.Create(ctx, sale))
	sale.Lines[0].ItemID = "mutado"

	got, err := s.Repos().Sales.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Lines[0].ItemID)

	assert.ErrorIs(t, s.Repos().Sales.Create(ctx, &entity.Sale{ID: "s2", CompanyID: "c", OrderID: "SAL-0001"}), domain.ErrDuplicate)
}

func TestLastCode_PorNumero(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for i, code := range []string{"SAL-9999", "SAL-10000", "SAL-0002"} {
		require.NoError(t, s.Repos().Sales.Create(ctx, &entity.Sale{ID: string(rune('a' + i)), CompanyID: "c", OrderID: code}))
	}
	code, err := s.Repos().Sales.LastCode(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "SAL-10000", code)
}

func TestItemRepository_SKUDuplicado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Repos().Items.Create(ctx, &entity.Item{ID: "a", CompanyID: "c", SKU: "ARZ"}))
	assert.ErrorIs(t, s.Repos().Items.Create(ctx, &entity.Item{ID: "b", CompanyID: "c", SKU: "arz"}), domain.ErrDuplicate)
	assert.NoError(t, s.Repos().Items.Create(ctx, &entity.Item{ID: "c", CompanyID: "otra", SKU: "ARZ"}))
}

func TestHeldOrderStore_Vencimiento(t *testing.T) {
	store := NewHeldOrderStore()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &entity.HeldOrder{ID: "h1", CompanyID: "c", HeldAt: now}, time.Hour))
	got, err := store.Get(ctx, "c", "h1")
	require.NoError(t, err)
	require.NotNil(t, got)

	now = now.Add(2 * time.Hour)
	got, err = store.Get(ctx, "c", "h1")
	require.NoError(t, err)
	assert.Nil(t, got)
	list, err := store.List(ctx, "c")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLocker(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	release, err := l.Obtain(ctx, "k", time.Minute)
	require.NoError(t, err)
	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, domain.ErrLocked)

	require.NoError(t, release(ctx))
	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.NoError(t, err)
}
