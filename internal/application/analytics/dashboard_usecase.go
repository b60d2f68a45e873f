// Package analytics contiene los casos de uso de reportes de negocio y el dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopItems = 5 // artículos en el widget del dashboard

// DashboardUseCase genera el resumen del día y del mes en curso.
// Solo lee: delega las consultas en ReportRepository y en los repositorios de catálogo y terceros.
type DashboardUseCase struct {
	reportRepo   repository.ReportRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		reportRepo:   reportRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO. Las consultas son independientes y corren en paralelo:
// métricas de ventas y gastos (hoy y mes), top de artículos, stock bajo y cartera.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type periodResult struct {
		summary dto.PeriodSummaryDTO
		err     error
	}
	type topResult struct {
		items []dto.TopItemDTO
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type balanceResult struct {
		total decimal.Decimal
		err   error
	}

	todayCh := make(chan periodResult, 1)
	monthCh := make(chan periodResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan countResult, 1)
	recvCh := make(chan balanceResult, 1)
	payCh := make(chan balanceResult, 1)

	go func() {
		s, err := uc.period(ctx, companyID, todayStart, todayEnd)
		todayCh <- periodResult{s, err}
	}()
	go func() {
		s, err := uc.period(ctx, companyID, monthStart, todayEnd)
		monthCh <- periodResult{s, err}
	}()
	go func() {
		rows, err := uc.reportRepo.GetTopItems(ctx, companyID, monthStart, todayEnd, dashboardTopItems)
		topCh <- topResult{toTopItems(rows), err}
	}()
	go func() {
		items, err := uc.itemRepo.ListLowStock(ctx, companyID)
		lowCh <- countResult{len(items), err}
	}()
	go func() {
		list, err := uc.customerRepo.ListWithBalance(ctx, companyID)
		total := decimal.Zero
		for _, c := range list {
			total = total.Add(c.CurrentBalance)
		}
		recvCh <- balanceResult{total, err}
	}()
	go func() {
		list, err := uc.supplierRepo.ListWithBalance(ctx, companyID)
		total := decimal.Zero
		for _, s := range list {
			total = total.Add(s.CurrentBalance)
		}
		payCh <- balanceResult{total, err}
	}()

	today, month, top, low, recv, pay := <-todayCh, <-monthCh, <-topCh, <-lowCh, <-recvCh, <-payCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top artículos: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if recv.err != nil {
		return nil, fmt.Errorf("dashboard: cuentas por cobrar: %w", recv.err)
	}
	if pay.err != nil {
		return nil, fmt.Errorf("dashboard: cuentas por pagar: %w", pay.err)
	}

	return &dto.DashboardSummaryDTO{
		Today:         today.summary,
		Month:         month.summary,
		LowStockCount: low.n,
		Receivables:   recv.total.Round(2),
		Payables:      pay.total.Round(2),
		TopItems:      top.items,
		DateLabel:     monthLabel(now),
	}, nil
}

// period ventas, utilidad bruta y gastos de un rango.
func (uc *DashboardUseCase) period(ctx context.Context, companyID string, from, to time.Time) (dto.PeriodSummaryDTO, error) {
	m, err := uc.reportRepo.GetSalesMetrics(ctx, companyID, from, to)
	if err != nil {
		return dto.PeriodSummaryDTO{}, err
	}
	expenses, err := uc.reportRepo.GetExpensesTotal(ctx, companyID, from, to)
	if err != nil {
		return dto.PeriodSummaryDTO{}, err
	}
	return dto.PeriodSummaryDTO{
		SalesCount:  m.Count,
		Sales:       m.Total.Round(2),
		GrossProfit: grossProfit(m).Round(2),
		Expenses:    expenses.Round(2),
	}, nil
}

// grossProfit ingreso neto de impuestos y descuentos menos el costo de ventas.
func grossProfit(m repository.SalesMetrics) decimal.Decimal {
	return m.Subtotal.Sub(m.Discount).Sub(m.COGS)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
