package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

type heldEntry struct {
	order     entity.HeldOrder
	expiresAt time.Time
}

// HeldOrderStore carritos en espera en memoria, con vencimiento. Se usa cuando no hay Redis configurado.
type HeldOrderStore struct {
	mu     sync.Mutex
	orders map[string]heldEntry
	now    func() time.Time
}

// NewHeldOrderStore crea el almacén.
func NewHeldOrderStore() *HeldOrderStore {
	return &HeldOrderStore{orders: map[string]heldEntry{}, now: time.Now}
}

func heldKey(companyID, id string) string { return companyID + "|" + id }

func (s *HeldOrderStore) Save(_ context.Context, order *entity.HeldOrder, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := *order
	o.Lines = slices.Clone(order.Lines)
	s.orders[heldKey(order.CompanyID, order.ID)] = heldEntry{order: o, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *HeldOrderStore) Get(_ context.Context, companyID, id string) (*entity.HeldOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := heldKey(companyID, id)
	e, ok := s.orders[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.orders, key)
		return nil, nil
	}
	o := e.order
	o.Lines = slices.Clone(e.order.Lines)
	return &o, nil
}

// List carritos vigentes de la empresa, más antiguo primero. Purga los vencidos.
func (s *HeldOrderStore) List(_ context.Context, companyID string) ([]*entity.HeldOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	out := []*entity.HeldOrder{}
	for key, e := range s.orders {
		if !now.Before(e.expiresAt) {
			delete(s.orders, key)
			continue
		}
		if e.order.CompanyID != companyID {
			continue
		}
		o := e.order
		o.Lines = slices.Clone(e.order.Lines)
		out = append(out, &o)
	}
	slices.SortFunc(out, func(a, b *entity.HeldOrder) int { return a.HeldAt.Compare(b.HeldAt) })
	return out, nil
}

func (s *HeldOrderStore) Delete(_ context.Context, companyID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, heldKey(companyID, id))
	return nil
}

// Locker candado local por clave con vencimiento, equivalente en un solo proceso a redislock.
type Locker struct {
	mu    sync.Mutex
	held  map[string]lockEntry
	now   func() time.Time
	token uint64
}

type lockEntry struct {
	token     uint64
	expiresAt time.Time
}

// NewLocker crea el candado local.
func NewLocker() *Locker {
	return &Locker{held: map[string]lockEntry{}, now: time.Now}
}

// Obtain toma la clave o devuelve domain.ErrLocked si está tomada y vigente.
func (l *Locker) Obtain(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if e, ok := l.held[key]; ok && now.Before(e.expiresAt) {
		return nil, domain.ErrLocked
	}
	l.token++
	token := l.token
	l.held[key] = lockEntry{token: token, expiresAt: now.Add(ttl)}
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if e, ok := l.held[key]; ok && e.token == token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
