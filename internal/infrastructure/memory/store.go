// Package memory implementa los repositorios sobre mapas en memoria protegidos por un RWMutex.
// Se usa en desarrollo (STORAGE_DRIVER=memory) y como backend de las pruebas de casos de uso.
//
// Las transacciones trabajan sobre una copia del estado y la publican solo si fn termina sin error,
// con el Store bloqueado en escritura durante toda la transacción.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

type counter struct {
	last   int64
	seeded bool
}

type state struct {
	companies map[string]entity.Company
	users     map[string]entity.User
	roles     map[string]entity.Role
	items     map[string]entity.Item
	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier
	sales     map[string]entity.Sale
	purchases map[string]entity.Purchase
	payments  map[string]entity.Payment
	expenses  map[string]entity.Expense
	movements []entity.StockMovement
	sequences map[string]counter
}

func newState() *state {
	return &state{
		companies: map[string]entity.Company{},
		users:     map[string]entity.User{},
		roles:     map[string]entity.Role{},
		items:     map[string]entity.Item{},
		customers: map[string]entity.Customer{},
		suppliers: map[string]entity.Supplier{},
		sales:     map[string]entity.Sale{},
		purchases: map[string]entity.Purchase{},
		payments:  map[string]entity.Payment{},
		expenses:  map[string]entity.Expense{},
		sequences: map[string]counter{},
	}
}

// clone copia los mapas; los valores guardados nunca se modifican en sitio (ver copySale y demás).
func (st *state) clone() *state {
	return &state{
		companies: cloneMap(st.companies),
		users:     cloneMap(st.users),
		roles:     cloneMap(st.roles),
		items:     cloneMap(st.items),
		customers: cloneMap(st.customers),
		suppliers: cloneMap(st.suppliers),
		sales:     cloneMap(st.sales),
		purchases: cloneMap(st.purchases),
		payments:  cloneMap(st.payments),
		expenses:  cloneMap(st.expenses),
		movements: slices.Clone(st.movements),
		sequences: cloneMap(st.sequences),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run implementa repository.TxRunner: todo o nada.
func (s *Store) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(s.repos(tx)); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return s.repos(nil)
}

func (s *Store) repos(tx *state) repository.TxRepos {
	b := base{s: s, tx: tx}
	return repository.TxRepos{
		Items:     &ItemRepository{b},
		Customers: &CustomerRepository{b},
		Suppliers: &SupplierRepository{b},
		Sales:     &SaleRepository{b},
		Purchases: &PurchaseRepository{b},
		Payments:  &PaymentRepository{b},
		Expenses:  &ExpenseRepository{b},
		Movements: &StockMovementRepository{b},
		Sequences: &SequenceRepository{b},
	}
}

// Companies repositorio de empresas.
func (s *Store) Companies() *CompanyRepository { return &CompanyRepository{base{s: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{base{s: s}} }

// Roles repositorio de roles.
func (s *Store) Roles() *RoleRepository { return &RoleRepository{base{s: s}} }

// Reports consultas de reportes.
func (s *Store) Reports() *ReportRepository { return &ReportRepository{base{s: s}} }

// base decide si un repositorio opera sobre la copia de una transacción o sobre el estado bloqueando el mutex.
type base struct {
	s  *Store
	tx *state
}

func (b base) read(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	return fn(b.s.st)
}

func (b base) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	return fn(b.s.st)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// paginate aplica limit/offset (limit <= 0 = sin límite).
func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	if offset > 0 {
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func ptr[T any](v T) *T { return &v }
