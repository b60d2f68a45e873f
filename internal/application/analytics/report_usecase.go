package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultTopN = 10
	maxTopN     = 100
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ReportUseCase reportes de rentabilidad, inventario y cartera.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// ProfitLoss estado de resultados del periodo [from, to].
func (uc *ReportUseCase) ProfitLoss(ctx context.Context, companyID string, from, to time.Time) (*dto.ProfitLossDTO, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	m, err := uc.reportRepo.GetSalesMetrics(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: ventas: %w", err)
	}
	expenses, err := uc.reportRepo.GetExpensesTotal(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: gastos: %w", err)
	}
	purchases, err := uc.reportRepo.GetPurchasesTotal(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte: compras: %w", err)
	}
	gross := grossProfit(m)
	return &dto.ProfitLossDTO{
		From:        from,
		To:          to,
		SalesCount:  m.Count,
		Revenue:     m.Subtotal.Round(2),
		Discount:    m.Discount.Round(2),
		NetRevenue:  m.Subtotal.Sub(m.Discount).Round(2),
		Tax:         m.Tax.Round(2),
		COGS:        m.COGS.Round(2),
		GrossProfit: gross.Round(2),
		Expenses:    expenses.Round(2),
		NetProfit:   gross.Sub(expenses).Round(2),
		Purchases:   purchases.Round(2),
	}, nil
}

// TopItems ranking de artículos por ingreso en el periodo.
func (uc *ReportUseCase) TopItems(ctx context.Context, companyID string, from, to time.Time, limit int) ([]dto.TopItemDTO, error) {
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}
	rows, err := uc.reportRepo.GetTopItems(ctx, companyID, from, to, limit)
	if err != nil {
		return nil, err
	}
	return toTopItems(rows), nil
}

// LowStock artículos en o por debajo del mínimo, mayor déficit primero, con la cantidad
// sugerida para volver al doble del mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context, companyID string) ([]dto.LowStockItemDTO, error) {
	items, err := uc.itemRepo.ListLowStock(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		deficit := it.MinQuantity.Sub(it.Quantity)
		if deficit.IsNegative() {
			deficit = decimal.Zero
		}
		out = append(out, dto.LowStockItemDTO{
			ItemID:      it.ID,
			SKU:         it.SKU,
			Name:        it.Name,
			Quantity:    it.Quantity,
			MinQuantity: it.MinQuantity,
			Deficit:     deficit,
			Suggested:   it.MinQuantity.Mul(two).Sub(it.Quantity),
			UnitCost:    it.PurchasePrice,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deficit.GreaterThan(out[j].Deficit) })
	return out, nil
}

// Receivables clientes con saldo por cobrar.
func (uc *ReportUseCase) Receivables(ctx context.Context, companyID string) (*dto.BalanceReportDTO, error) {
	list, err := uc.customerRepo.ListWithBalance(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rep := &dto.BalanceReportDTO{Total: decimal.Zero, Rows: make([]dto.BalanceRowDTO, 0, len(list))}
	for _, c := range list {
		rep.Rows = append(rep.Rows, dto.BalanceRowDTO{PartyID: c.ID, Name: c.Name, Phone: c.Phone, Balance: c.CurrentBalance})
		rep.Total = rep.Total.Add(c.CurrentBalance)
	}
	return rep, nil
}

// Payables proveedores con saldo por pagar.
func (uc *ReportUseCase) Payables(ctx context.Context, companyID string) (*dto.BalanceReportDTO, error) {
	list, err := uc.supplierRepo.ListWithBalance(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rep := &dto.BalanceReportDTO{Total: decimal.Zero, Rows: make([]dto.BalanceRowDTO, 0, len(list))}
	for _, s := range list {
		rep.Rows = append(rep.Rows, dto.BalanceRowDTO{PartyID: s.ID, Name: s.Name, Phone: s.Phone, Balance: s.CurrentBalance})
		rep.Total = rep.Total.Add(s.CurrentBalance)
	}
	return rep, nil
}

func toTopItems(rows []repository.TopItemResult) []dto.TopItemDTO {
	out := make([]dto.TopItemDTO, 0, len(rows))
	for _, r := range rows {
		margin := decimal.Zero
		if r.Revenue.IsPositive() {
			margin = r.Revenue.Sub(r.COGS).Div(r.Revenue).Mul(hundred).Round(2)
		}
		out = append(out, dto.TopItemDTO{
			ItemID:           r.ItemID,
			SKU:              r.SKU,
			Name:             r.Name,
			QuantitySold:     r.Quantity,
			TotalRevenue:     r.Revenue.Round(2),
			MarginPercentage: margin,
		})
	}
	return out
}
