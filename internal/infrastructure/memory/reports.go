package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportRepository implementa repository.ReportRepository recorriendo los documentos.
// Las ventas anuladas o devueltas no cuentan.
type ReportRepository struct{ base }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func countable(status string) bool {
	return status != entity.DocStatusCancelled && status != entity.DocStatusReturn
}

func (r *ReportRepository) GetSalesMetrics(_ context.Context, companyID string, from, to time.Time) (m repository.SalesMetrics, err error) {
	m = repository.SalesMetrics{Subtotal: decimal.Zero, Tax: decimal.Zero, Discount: decimal.Zero, Total: decimal.Zero, COGS: decimal.Zero}
	err = r.read(func(st *state) error {
		for _, s := range st.sales {
			if s.CompanyID != companyID || !countable(s.Status) || !inRange(s.Date, from, to) {
				continue
			}
			m.Count++
			m.Subtotal = m.Subtotal.Add(s.Subtotal)
			m.Tax = m.Tax.Add(s.TaxTotal)
			m.Discount = m.Discount.Add(s.Discount)
			m.Total = m.Total.Add(s.Total)
			for _, l := range s.Lines {
				m.COGS = m.COGS.Add(l.Quantity.Mul(l.UnitCost))
			}
		}
		return nil
	})
	return m, err
}

func (r *ReportRepository) GetPurchasesTotal(_ context.Context, companyID string, from, to time.Time) (total decimal.Decimal, err error) {
	total = decimal.Zero
	err = r.read(func(st *state) error {
		for _, p := range st.purchases {
			if p.CompanyID == companyID && countable(p.Status) && inRange(p.Date, from, to) {
				total = total.Add(p.Total)
			}
		}
		return nil
	})
	return total, err
}

func (r *ReportRepository) GetExpensesTotal(_ context.Context, companyID string, from, to time.Time) (total decimal.Decimal, err error) {
	total = decimal.Zero
	err = r.read(func(st *state) error {
		for _, e := range st.expenses {
			if e.CompanyID == companyID && inRange(e.Date, from, to) {
				total = total.Add(e.Amount)
			}
		}
		return nil
	})
	return total, err
}

// GetTopItems artículos con mayor ingreso en el periodo.
func (r *ReportRepository) GetTopItems(_ context.Context, companyID string, from, to time.Time, limit int) (out []repository.TopItemResult, err error) {
	err = r.read(func(st *state) error {
		acc := map[string]*repository.TopItemResult{}
		for _, s := range st.sales {
			if s.CompanyID != companyID || !countable(s.Status) || !inRange(s.Date, from, to) {
				continue
			}
			for _, l := range s.Lines {
				t, ok := acc[l.ItemID]
				if !ok {
					t = &repository.TopItemResult{ItemID: l.ItemID, Name: l.ItemName, Quantity: decimal.Zero, Revenue: decimal.Zero, COGS: decimal.Zero}
					if it, found := st.items[l.ItemID]; found {
						t.SKU, t.Name = it.SKU, it.Name
					}
					acc[l.ItemID] = t
				}
				t.Quantity = t.Quantity.Add(l.Quantity)
				t.Revenue = t.Revenue.Add(l.Subtotal)
				t.COGS = t.COGS.Add(l.Quantity.Mul(l.UnitCost))
			}
		}
		for _, t := range acc {
			out = append(out, *t)
		}
		slices.SortFunc(out, func(a, b repository.TopItemResult) int {
			if c := b.Revenue.Cmp(a.Revenue); c != 0 {
				return c
			}
			return b.Quantity.Cmp(a.Quantity)
		})
		out = paginate(out, limit, 0)
		return nil
	})
	return out, err
}
