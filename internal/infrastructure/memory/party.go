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

func matchesParty(search, name, taxID, email, phone string) bool {
	if search == "" {
		return true
	}
	return containsFold(name, search) || containsFold(taxID, search) || containsFold(email, search) || containsFold(phone, search)
}

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct{ base }

func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	return r.write(func(st *state) error {
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepository) GetByID(_ context.Context, id string) (out *entity.Customer, err error) {
	err = r.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = ptr(c)
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (out *entity.Customer, err error) {
	err = r.read(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID && c.TaxID == taxID {
				out = ptr(c)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) List(_ context.Context, f repository.PartyFilter) (out []*entity.Customer, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Customer
		for _, c := range st.customers {
			if c.CompanyID == f.CompanyID && matchesParty(f.Search, c.Name, c.TaxID, c.Email, c.Phone) {
				all = append(all, ptr(c))
			}
		}
		slices.SortFunc(all, func(a, b *entity.Customer) int { return strings.Compare(a.Name, b.Name) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	return r.write(func(st *state) error {
		cur, ok := st.customers[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *c
		next.OpeningBalance, next.CurrentBalance = cur.OpeningBalance, cur.CurrentBalance
		st.customers[c.ID] = next
		return nil
	})
}

func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.customers, id)
		return nil
	})
}

func (r *CustomerRepository) AddBalance(_ context.Context, id string, delta decimal.Decimal) error {
	return r.write(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.CurrentBalance = c.CurrentBalance.Add(delta)
		st.customers[id] = c
		return nil
	})
}

// ListWithBalance clientes con saldo positivo, mayor saldo primero.
func (r *CustomerRepository) ListWithBalance(_ context.Context, companyID string) (out []*entity.Customer, err error) {
	err = r.read(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID && c.CurrentBalance.IsPositive() {
				out = append(out, ptr(c))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Customer) int { return b.CurrentBalance.Cmp(a.CurrentBalance) })
		return nil
	})
	return out, err
}

// SupplierRepository implementa repository.SupplierRepository.
type SupplierRepository struct{ base }

func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	return r.write(func(st *state) error {
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (out *entity.Supplier, err error) {
	err = r.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = ptr(s)
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepository) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (out *entity.Supplier, err error) {
	err = r.read(func(st *state) error {
		for _, s := range st.suppliers {
			if s.CompanyID == companyID && s.TaxID == taxID {
				out = ptr(s)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepository) List(_ context.Context, f repository.PartyFilter) (out []*entity.Supplier, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Supplier
		for _, s := range st.suppliers {
			if s.CompanyID == f.CompanyID && matchesParty(f.Search, s.Name, s.TaxID, s.Email, s.Phone) {
				all = append(all, ptr(s))
			}
		}
		slices.SortFunc(all, func(a, b *entity.Supplier) int { return strings.Compare(a.Name, b.Name) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *SupplierRepository) Update(_ context.Context, s *entity.Supplier) error {
	return r.write(func(st *state) error {
		cur, ok := st.suppliers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *s
		next.OpeningBalance, next.CurrentBalance = cur.OpeningBalance, cur.CurrentBalance
		st.suppliers[s.ID] = next
		return nil
	})
}

func (r *SupplierRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.suppliers, id)
		return nil
	})
}

func (r *SupplierRepository) AddBalance(_ context.Context, id string, delta decimal.Decimal) error {
	return r.write(func(st *state) error {
		s, ok := st.suppliers[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.CurrentBalance = s.CurrentBalance.Add(delta)
		st.suppliers[id] = s
		return nil
	})
}

func (r *SupplierRepository) ListWithBalance(_ context.Context, companyID string) (out []*entity.Supplier, err error) {
	err = r.read(func(st *state) error {
		for _, s := range st.suppliers {
			if s.CompanyID == companyID && s.CurrentBalance.IsPositive() {
				out = append(out, ptr(s))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Supplier) int { return b.CurrentBalance.Cmp(a.CurrentBalance) })
		return nil
	})
	return out, err
}
