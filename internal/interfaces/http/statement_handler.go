package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// StatementHandler estados de cuenta (se reconstruyen en cada consulta).
type StatementHandler struct {
	uc *ledger.StatementUseCase
}

// NewStatementHandler construye el handler.
func NewStatementHandler(uc *ledger.StatementUseCase) *StatementHandler {
	return &StatementHandler{uc: uc}
}

// Customer godoc
// @Summary      Estado de cuenta de un cliente
// @Description  Saldo inicial, ventas, devoluciones y abonos ordenados por fecha con el saldo después de cada fila.
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del cliente"
// @Param        from  query  string  false  "Desde (AAAA-MM-DD); lo anterior se acumula como saldo anterior"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200  {object}  dto.StatementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement [get]
func (h *StatementHandler) Customer(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	r, err := dateRangeFromQuery(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CustomerStatement(c.UserContext(), companyID, c.Params("id"), r.From, r.To)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Supplier godoc
// @Summary      Estado de cuenta de un proveedor
// @Tags         statements
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del proveedor"
// @Param        from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Success      200  {object}  dto.StatementResponse
// @Router       /api/suppliers/{id}/statement [get]
func (h *StatementHandler) Supplier(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	r, err := dateRangeFromQuery(c)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SupplierStatement(c.UserContext(), companyID, c.Params("id"), r.From, r.To)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CustomerPDF godoc
// @Summary      Estado de cuenta de un cliente en PDF
// @Tags         statements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del cliente"
// @Success      200  {file}  binary
// @Router       /api/customers/{id}/statement/pdf [get]
func (h *StatementHandler) CustomerPDF(c *fiber.Ctx) error {
	return h.pdf(c, entity.PartyCustomer)
}

// SupplierPDF godoc
// @Summary      Estado de cuenta de un proveedor en PDF
// @Tags         statements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del proveedor"
// @Success      200  {file}  binary
// @Router       /api/suppliers/{id}/statement/pdf [get]
func (h *StatementHandler) SupplierPDF(c *fiber.Ctx) error {
	return h.pdf(c, entity.PartySupplier)
}

func (h *StatementHandler) pdf(c *fiber.Ctx, partyType string) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	r, err := dateRangeFromQuery(c)
	if err != nil {
		return fail(c, err)
	}
	body, filename, err := h.uc.StatementPDF(c.UserContext(), companyID, partyType, c.Params("id"), r.From, r.To)
	if err != nil {
		return fail(c, err)
	}
	return sendPDF(c, body, filename)
}
