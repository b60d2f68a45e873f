package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
)

func TestLocker_ClaveOcupada(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	first, second := NewLocker(client), NewLocker(client)

	release, err := first.Obtain(ctx, "lock:held:c1:h1", time.Minute)
	require.NoError(t, err)

	_, err = second.Obtain(ctx, "lock:held:c1:h1", time.Minute)
	assert.ErrorIs(t, err, domain.ErrLocked)

	other, err := second.Obtain(ctx, "lock:held:c1:h2", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	again, err := second.Obtain(ctx, "lock:held:c1:h1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestLocker_VencimientoLiberaLaClave(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	locker := NewLocker(client)

	stale, err := locker.Obtain(ctx, "lock:held:c1:h1", 30*time.Second)
	require.NoError(t, err)
	mr.FastForward(time.Minute)

	fresh, err := locker.Obtain(ctx, "lock:held:c1:h1", 30*time.Second)
	require.NoError(t, err)

	// Soltar un candado vencido no es un error ni libera al nuevo dueño.
	require.NoError(t, stale(ctx))
	_, err = locker.Obtain(ctx, "lock:held:c1:h1", 30*time.Second)
	assert.ErrorIs(t, err, domain.ErrLocked)
	require.NoError(t, fresh(ctx))
}
