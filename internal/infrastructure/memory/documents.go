package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
)

func copySale(s entity.Sale) entity.Sale {
	s.Lines = slices.Clone(s.Lines)
	s.Payments = slices.Clone(s.Payments)
	return s
}

func copyPurchase(p entity.Purchase) entity.Purchase {
	p.Lines = slices.Clone(p.Lines)
	p.Payments = slices.Clone(p.Payments)
	return p
}

// latestCode último código por número final (SAL-10000 es posterior a SAL-9999).
func latestCode(codes []string) string {
	var best string
	var bestN int64 = -1
	for _, c := range codes {
		if n, ok := sequence.Parse(c); ok && n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

func matchesDocument(f repository.DocumentFilter, companyID, partyID, status, code string, date time.Time) bool {
	if companyID != f.CompanyID {
		return false
	}
	if f.PartyID != "" && partyID != f.PartyID {
		return false
	}
	if f.Status != "" && status != f.Status {
		return false
	}
	if f.Search != "" && !containsFold(code, f.Search) {
		return false
	}
	if f.From != nil && date.Before(*f.From) {
		return false
	}
	if f.To != nil && date.After(*f.To) {
		return false
	}
	return true
}

// SaleRepository implementa repository.SaleRepository.
type SaleRepository struct{ base }

func (r *SaleRepository) Create(_ context.Context, s *entity.Sale) error {
	return r.write(func(st *state) error {
		for _, other := range st.sales {
			if other.CompanyID == s.CompanyID && other.OrderID == s.OrderID {
				return domain.ErrDuplicate
			}
		}
		st.sales[s.ID] = copySale(*s)
		return nil
	})
}

func (r *SaleRepository) GetByID(_ context.Context, id string) (out *entity.Sale, err error) {
	err = r.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = ptr(copySale(s))
		}
		return nil
	})
	return out, err
}

func (r *SaleRepository) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepository) UpdateState(_ context.Context, s *entity.Sale) error {
	return r.write(func(st *state) error {
		cur, ok := st.sales[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status, cur.Paid, cur.Due = s.Status, s.Paid, s.Due
		cur.CancelledAt, cur.ReturnedAt, cur.UpdatedAt = s.CancelledAt, s.ReturnedAt, s.UpdatedAt
		st.sales[s.ID] = cur
		return nil
	})
}

func (r *SaleRepository) AddPayment(_ context.Context, saleID string, p entity.PaymentRecord) error {
	return r.write(func(st *state) error {
		cur, ok := st.sales[saleID]
		if !ok {
			return domain.ErrNotFound
		}
		cur = copySale(cur)
		cur.Payments = append(cur.Payments, p)
		st.sales[saleID] = cur
		return nil
	})
}

// List más reciente primero; sin líneas ni pagos.
func (r *SaleRepository) List(_ context.Context, f repository.DocumentFilter) (out []*entity.Sale, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Sale
		for _, s := range st.sales {
			if matchesDocument(f, s.CompanyID, s.CustomerID, s.Status, s.OrderID, s.Date) {
				h := s
				h.Lines, h.Payments = nil, nil
				all = append(all, &h)
			}
		}
		slices.SortFunc(all, func(a, b *entity.Sale) int { return b.Date.Compare(a.Date) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *SaleRepository) ListByCustomer(_ context.Context, customerID string) (out []*entity.Sale, err error) {
	err = r.read(func(st *state) error {
		for _, s := range st.sales {
			if s.CustomerID == customerID {
				out = append(out, ptr(copySale(s)))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Sale) int { return a.Date.Compare(b.Date) })
		return nil
	})
	return out, err
}

func (r *SaleRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	list, err := r.ListByCustomer(ctx, customerID)
	return len(list), err
}

func (r *SaleRepository) LastCode(_ context.Context, companyID string) (code string, err error) {
	err = r.read(func(st *state) error {
		var codes []string
		for _, s := range st.sales {
			if s.CompanyID == companyID {
				codes = append(codes, s.OrderID)
			}
		}
		code = latestCode(codes)
		return nil
	})
	return code, err
}

// PurchaseRepository implementa repository.PurchaseRepository.
type PurchaseRepository struct{ base }

func (r *PurchaseRepository) Create(_ context.Context, p *entity.Purchase) error {
	return r.write(func(st *state) error {
		for _, other := range st.purchases {
			if other.CompanyID == p.CompanyID && other.PurchaseID == p.PurchaseID {
				return domain.ErrDuplicate
			}
		}
		st.purchases[p.ID] = copyPurchase(*p)
		return nil
	})
}

func (r *PurchaseRepository) GetByID(_ context.Context, id string) (out *entity.Purchase, err error) {
	err = r.read(func(st *state) error {
		if p, ok := st.purchases[id]; ok {
			out = ptr(copyPurchase(p))
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepository) UpdateState(_ context.Context, p *entity.Purchase) error {
	return r.write(func(st *state) error {
		cur, ok := st.purchases[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status, cur.Paid, cur.Due = p.Status, p.Paid, p.Due
		cur.CancelledAt, cur.ReturnedAt, cur.UpdatedAt = p.CancelledAt, p.ReturnedAt, p.UpdatedAt
		st.purchases[p.ID] = cur
		return nil
	})
}

func (r *PurchaseRepository) AddPayment(_ context.Context, purchaseID string, pay entity.PaymentRecord) error {
	return r.write(func(st *state) error {
		cur, ok := st.purchases[purchaseID]
		if !ok {
			return domain.ErrNotFound
		}
		cur = copyPurchase(cur)
		cur.Payments = append(cur.Payments, pay)
		st.purchases[purchaseID] = cur
		return nil
	})
}

func (r *PurchaseRepository) List(_ context.Context, f repository.DocumentFilter) (out []*entity.Purchase, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Purchase
		for _, p := range st.purchases {
			if matchesDocument(f, p.CompanyID, p.SupplierID, p.Status, p.PurchaseID, p.Date) {
				h := p
				h.Lines, h.Payments = nil, nil
				all = append(all, &h)
			}
		}
		slices.SortFunc(all, func(a, b *entity.Purchase) int { return b.Date.Compare(a.Date) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *PurchaseRepository) ListBySupplier(_ context.Context, supplierID string) (out []*entity.Purchase, err error) {
	err = r.read(func(st *state) error {
		for _, p := range st.purchases {
			if p.SupplierID == supplierID {
				out = append(out, ptr(copyPurchase(p)))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Purchase) int { return a.Date.Compare(b.Date) })
		return nil
	})
	return out, err
}

func (r *PurchaseRepository) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	list, err := r.ListBySupplier(ctx, supplierID)
	return len(list), err
}

func (r *PurchaseRepository) LastCode(_ context.Context, companyID string) (code string, err error) {
	err = r.read(func(st *state) error {
		var codes []string
		for _, p := range st.purchases {
			if p.CompanyID == companyID {
				codes = append(codes, p.PurchaseID)
			}
		}
		code = latestCode(codes)
		return nil
	})
	return code, err
}

// PaymentRepository implementa repository.PaymentRepository.
type PaymentRepository struct{ base }

func (r *PaymentRepository) Create(_ context.Context, p *entity.Payment) error {
	return r.write(func(st *state) error {
		st.payments[p.ID] = *p
		return nil
	})
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (out *entity.Payment, err error) {
	err = r.read(func(st *state) error {
		if p, ok := st.payments[id]; ok {
			out = ptr(p)
		}
		return nil
	})
	return out, err
}

func (r *PaymentRepository) ListByParty(_ context.Context, partyType, partyID string) (out []*entity.Payment, err error) {
	err = r.read(func(st *state) error {
		for _, p := range st.payments {
			if p.PartyType == partyType && p.PartyID == partyID {
				out = append(out, ptr(p))
			}
		}
		slices.SortFunc(out, func(a, b *entity.Payment) int { return a.Date.Compare(b.Date) })
		return nil
	})
	return out, err
}

func (r *PaymentRepository) CountByParty(ctx context.Context, partyType, partyID string) (int, error) {
	list, err := r.ListByParty(ctx, partyType, partyID)
	return len(list), err
}

func (r *PaymentRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.payments[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.payments, id)
		return nil
	})
}

func (r *PaymentRepository) LastCode(_ context.Context, companyID, prefix string) (code string, err error) {
	err = r.read(func(st *state) error {
		var codes []string
		for _, p := range st.payments {
			if p.CompanyID == companyID && strings.HasPrefix(p.Code, prefix+"-") {
				codes = append(codes, p.Code)
			}
		}
		code = latestCode(codes)
		return nil
	})
	return code, err
}

// ExpenseRepository implementa repository.ExpenseRepository.
type ExpenseRepository struct{ base }

func (r *ExpenseRepository) Create(_ context.Context, e *entity.Expense) error {
	return r.write(func(st *state) error {
		st.expenses[e.ID] = *e
		return nil
	})
}

func (r *ExpenseRepository) GetByID(_ context.Context, id string) (out *entity.Expense, err error) {
	err = r.read(func(st *state) error {
		if e, ok := st.expenses[id]; ok {
			out = ptr(e)
		}
		return nil
	})
	return out, err
}

func (r *ExpenseRepository) List(_ context.Context, f repository.ExpenseFilter) (out []*entity.Expense, total int, err error) {
	err = r.read(func(st *state) error {
		var all []*entity.Expense
		for _, e := range st.expenses {
			if e.CompanyID != f.CompanyID {
				continue
			}
			if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
				continue
			}
			if f.From != nil && e.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && e.Date.After(*f.To) {
				continue
			}
			all = append(all, ptr(e))
		}
		slices.SortFunc(all, func(a, b *entity.Expense) int { return b.Date.Compare(a.Date) })
		total = len(all)
		out = paginate(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r *ExpenseRepository) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.expenses[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.expenses, id)
		return nil
	})
}

func (r *ExpenseRepository) LastCode(_ context.Context, companyID string) (code string, err error) {
	err = r.read(func(st *state) error {
		var codes []string
		for _, e := range st.expenses {
			if e.CompanyID == companyID {
				codes = append(codes, e.Code)
			}
		}
		code = latestCode(codes)
		return nil
	})
	return code, err
}
