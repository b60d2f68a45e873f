package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/pos"
)

// HeldOrderHandler carritos en espera del punto de venta.
type HeldOrderHandler struct {
	uc *pos.HeldOrderUseCase
}

// NewHeldOrderHandler construye el handler.
func NewHeldOrderHandler(uc *pos.HeldOrderUseCase) *HeldOrderHandler {
	return &HeldOrderHandler{uc: uc}
}

// Hold godoc
// @Summary      Dejar un carrito en espera
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HoldOrderRequest  true  "Carrito"
// @Success      201   {object}  dto.HeldOrderResponse
// @Router       /api/pos/held [post]
func (h *HeldOrderHandler) Hold(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.HoldOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Hold(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Carritos en espera vigentes
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.HeldOrderResponse
// @Router       /api/pos/held [get]
func (h *HeldOrderHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.UserContext(), companyID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener carrito en espera
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.HeldOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pos/held/{id} [get]
func (h *HeldOrderHandler) Get(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar carrito en espera
// @Tags         pos
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/pos/held/{id} [delete]
func (h *HeldOrderHandler) Discard(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if err := h.uc.Discard(c.UserContext(), companyID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Cobrar un carrito en espera (crea la venta)
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.CheckoutHeldOrderRequest  true  "Pagos"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK o cobro en curso"
// @Router       /api/pos/held/{id}/checkout [post]
func (h *HeldOrderHandler) Checkout(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CheckoutHeldOrderRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Checkout(c.UserContext(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
