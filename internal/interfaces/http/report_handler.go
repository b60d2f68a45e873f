package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
)

// ReportHandler tablero y reportes.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *analytics.DashboardUseCase, reports *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: reports}
}

// Dashboard godoc
// @Summary      Resumen del día y del mes (ventas, utilidad bruta, gastos)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.dashboard.GetSummary(c.UserContext(), companyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ProfitLoss godoc
// @Summary      Estado de resultados del periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (AAAA-MM-DD); por defecto el inicio del mes"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD); por defecto ahora"
// @Success      200  {object}  dto.ProfitLossDTO
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	from, to, err := periodFromQuery(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.reports.ProfitLoss(c.UserContext(), companyID, from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TopItems godoc
// @Summary      Productos más vendidos del periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to     query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        limit  query  int     false  "Cantidad"  default(10)
// @Success      200  {array}  dto.TopItemDTO
// @Router       /api/reports/top-items [get]
func (h *ReportHandler) TopItems(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	from, to, err := periodFromQuery(c)
	if err != nil {
		return fail(c, err)
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	out, err := h.reports.TopItems(c.UserContext(), companyID, from, to, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con existencia en o bajo el mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.reports.LowStock(c.UserContext(), companyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Receivables godoc
// @Summary      Cuentas por cobrar (clientes con saldo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceReportDTO
// @Router       /api/reports/receivables [get]
func (h *ReportHandler) Receivables(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.reports.Receivables(c.UserContext(), companyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Payables godoc
// @Summary      Cuentas por pagar (proveedores con saldo)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceReportDTO
// @Router       /api/reports/payables [get]
func (h *ReportHandler) Payables(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.reports.Payables(c.UserContext(), companyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// periodFromQuery rango obligatorio de los reportes; sin parámetros es el mes en curso.
func periodFromQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	r, err := dateRangeFromQuery(c)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if r.From != nil {
		from = *r.From
	}
	if r.To != nil {
		to = *r.To
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, invalidInput("el rango de fechas es inválido")
	}
	return from, to, nil
}
