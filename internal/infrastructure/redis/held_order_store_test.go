package redis

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// newTestClient levanta un Redis en proceso y devuelve un cliente apuntando a él.
func newTestClient(t *testing.T) (*goredis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func heldOrder(id, companyID string, heldAt time.Time) *entity.HeldOrder {
	return &entity.HeldOrder{
		ID:        id,
		CompanyID: companyID,
		CreatedBy: "u1",
		Note:      "mesa " + id,
		Lines:     []entity.HeldOrderLine{{ItemID: "a", Quantity: decimal.NewFromInt(2)}},
		Discount:  decimal.Zero,
		HeldAt:    heldAt,
		ExpiresAt: heldAt.Add(time.Hour),
	}
}

func TestHeldOrderStore_GuardaYLee(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewHeldOrderStore(client, zerolog.Nop())
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, heldOrder("h1", "c1", now), time.Hour))

	got, err := store.Get(ctx, "c1", "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mesa h1", got.Note)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, got.HeldAt.Equal(now))

	assert.Equal(t, time.Hour, mr.TTL("pos:held:c1:h1"))
	members, err := mr.SMembers("pos:held:c1:index")
	require.NoError(t, err)
	assert.Equal(t, []string{"h1"}, members)

	other, err := store.Get(ctx, "otra", "h1")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestHeldOrderStore_VenceConTTL(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewHeldOrderStore(client, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, heldOrder("h1", "c1", time.Now()), 30*time.Minute))
	mr.FastForward(31 * time.Minute)

	got, err := store.Get(ctx, "c1", "h1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHeldOrderStore_ListOrdenaYPurgaVencidos(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewHeldOrderStore(client, zerolog.Nop())
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Save(ctx, heldOrder("nuevo", "c1", base.Add(2*time.Minute)), 2*time.Hour))
	require.NoError(t, store.Save(ctx, heldOrder("viejo", "c1", base), 2*time.Hour))
	require.NoError(t, store.Save(ctx, heldOrder("corto", "c1", base.Add(time.Minute)), 10*time.Minute))
	require.NoError(t, store.Save(ctx, heldOrder("ajeno", "c2", base), 2*time.Hour))

	mr.FastForward(15 * time.Minute)

	list, err := store.List(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "viejo", list[0].ID)
	assert.Equal(t, "nuevo", list[1].ID)

	members, err := mr.SMembers("pos:held:c1:index")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"nuevo", "viejo"}, members)
}

func TestHeldOrderStore_ListVacio(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewHeldOrderStore(client, zerolog.Nop())

	list, err := store.List(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestHeldOrderStore_DeleteQuitaClaveEIndice(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewHeldOrderStore(client, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, heldOrder("h1", "c1", time.Now()), time.Hour))
	require.NoError(t, store.Delete(ctx, "c1", "h1"))

	assert.False(t, mr.Exists("pos:held:c1:h1"))
	got, err := store.Get(ctx, "c1", "h1")
	require.NoError(t, err)
	assert.Nil(t, got)
	list, err := store.List(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

// rejectSRem hace fallar los SREM sueltos para simular un Redis que rechaza la purga.
type rejectSRem struct{}

func (rejectSRem) DialHook(next goredis.DialHook) goredis.DialHook { return next }

func (rejectSRem) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		if cmd.Name() == "srem" {
			err := errors.New("srem rechazado")
			cmd.SetErr(err)
			return err
		}
		return next(ctx, cmd)
	}
}

func (rejectSRem) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func TestHeldOrderStore_PurgaFallidaSeRegistra(t *testing.T) {
	client, mr := newTestClient(t)
	var buf bytes.Buffer
	store := NewHeldOrderStore(client, zerolog.New(&buf))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, heldOrder("h1", "c1", time.Now()), time.Minute))
	mr.FastForward(2 * time.Minute)
	client.AddHook(rejectSRem{})

	list, err := store.List(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Contains(t, buf.String(), "no se pudo purgar el índice de carritos")
	assert.Contains(t, buf.String(), `"component":"redis"`)
	assert.Contains(t, buf.String(), "srem rechazado")
}
