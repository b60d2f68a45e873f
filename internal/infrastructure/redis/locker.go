package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
)

// Locker candado distribuido con redislock; un solo intento, sin reintentos.
type Locker struct {
	client *redislock.Client
}

// NewLocker construye el candado sobre un cliente existente.
func NewLocker(client *goredis.Client) *Locker {
	return &Locker{client: redislock.New(client)}
}

// Obtain toma la clave por ttl. Si otro proceso la tiene devuelve domain.ErrLocked.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}
