package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ItemRepository implementa repository.ItemRepository.
type ItemRepository struct{ base }

func (r *ItemRepository) Create(_ context.Context, item *entity.Item) error {
	return r.write(func(st *state) error {
		for _, it := range st.items {
			if it.CompanyID == item.CompanyID && strings.EqualFold(it.SKU, item.SKU) {
				return domain.ErrDuplicate
			}
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (item *entity.Item, err error) {
	err = r.read(func(st *state) error {
		if it, ok := st.items[id]; ok {
			item = ptr(it)
		}
		return nil
	})
	return item, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el Store bloqueado.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (item *entity.Item, err error) {
	err = r.read(func(st *state) error {
		for _, it := range st.items {
			if it.CompanyID == companyID && strings.EqualFold(it.SKU, sku) {
				item = ptr(it)
				return nil
			}
		}
		return nil
	})
	return item, err
}

func (r *ItemRepository) Update(_ context.Context, item *entity.Item) error {
	return r.write(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, it := range st.items {
			if it.ID != item.ID && it.CompanyID == item.CompanyID && strings.EqualFold(it.SKU, item.SKU) {
				return domain.ErrDuplicate
			}
		}
		next := *item
		next.Quantity = cur.Quantity
		st.items[item.ID] = next
		return nil
	})
}

func (r *ItemRepository) UpdateStock(_ context.Context, id string, quantity, purchasePrice decimal.Decimal) error {
	return r.write(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		it.Quantity, it.PurchasePrice = quantity, purchasePrice
		st.items[id] = it
		return nil
	})
}

func (r *ItemRepository) List(_ context.Context, f repository.ItemFilter) (out []*entity.Item, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Item
		for _, it := range st.items {
			if it.CompanyID != f.CompanyID {
				continue
			}
			if f.Search != "" && !containsFold(it.Name, f.Search) && !containsFold(it.SKU, f.Search) {
				continue
			}
			if f.Category != "" && !strings.EqualFold(it.Category, f.Category) {
				continue
			}
			if f.Brand != "" && !strings.EqualFold(it.Brand, f.Brand) {
				continue
			}
			if f.LowStock && !it.IsLowStock() {
				continue
			}
			all = append(all, ptr(it))
		}
		slices.SortFunc(all, func(a, b *entity.Item) int { return strings.Compare(a.Name, b.Name) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *ItemRepository) ListLowStock(ctx context.Context, companyID string) ([]*entity.Item, error) {
	list, _, err := r.List(ctx, repository.ItemFilter{CompanyID: companyID, LowStock: true})
	return list, err
}

func (r *ItemRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.items, id)
		return nil
	})
}

func (r *ItemRepository) IsReferenced(_ context.Context, id string) (used bool, err error) {
	err = r.read(func(st *state) error {
		for _, m := range st.movements {
			if m.ItemID == id {
				used = true
				return nil
			}
		}
		for _, s := range st.sales {
			if slices.ContainsFunc(s.Lines, func(l entity.LineItem) bool { return l.ItemID == id }) {
				used = true
				return nil
			}
		}
		for _, p := range st.purchases {
			if slices.ContainsFunc(p.Lines, func(l entity.LineItem) bool { return l.ItemID == id }) {
				used = true
				return nil
			}
		}
		return nil
	})
	return used, err
}

// StockMovementRepository implementa repository.StockMovementRepository.
type StockMovementRepository struct{ base }

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	return r.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListByItem más reciente primero.
func (r *StockMovementRepository) ListByItem(_ context.Context, itemID string, limit, offset int) (out []*entity.StockMovement, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			if st.movements[i].ItemID == itemID {
				all = append(all, ptr(st.movements[i]))
			}
		}
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}

// SequenceRepository implementa repository.SequenceRepository.
type SequenceRepository struct{ base }

func seqKey(companyID, prefix string) string { return companyID + "|" + prefix }

func (r *SequenceRepository) Lock(_ context.Context, companyID, prefix string) (last int64, seeded bool, err error) {
	err = r.read(func(st *state) error {
		c := st.sequences[seqKey(companyID, prefix)]
		last, seeded = c.last, c.seeded
		return nil
	})
	return last, seeded, err
}

func (r *SequenceRepository) Save(_ context.Context, companyID, prefix string, last int64) error {
	return r.write(func(st *state) error {
		st.sequences[seqKey(companyID, prefix)] = counter{last: last, seeded: true}
		return nil
	})
}
