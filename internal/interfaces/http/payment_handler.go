package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/billing"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// PaymentHandler abonos de clientes y pagos a proveedores fuera de un documento.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// RecordCustomer godoc
// @Summary      Registrar abono de un cliente (PAY-nnnn)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "Cliente, monto y método"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/payments/customers [post]
func (h *PaymentHandler) RecordCustomer(c *fiber.Ctx) error {
	return h.record(c, entity.PartyCustomer)
}

// RecordSupplier godoc
// @Summary      Registrar pago a un proveedor (SPY-nnnn)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "Proveedor, monto y método"
// @Success      201   {object}  dto.PaymentResponse
// @Router       /api/payments/suppliers [post]
func (h *PaymentHandler) RecordSupplier(c *fiber.Ctx) error {
	return h.record(c, entity.PartySupplier)
}

func (h *PaymentHandler) record(c *fiber.Ctx, partyType string) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.RecordPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	var (
		out *dto.PaymentResponse
		err error
	)
	if partyType == entity.PartySupplier {
		out, err = h.uc.RecordSupplierPayment(c.UserContext(), companyID, GetUserID(c), in)
	} else {
		out, err = h.uc.RecordCustomerPayment(c.UserContext(), companyID, GetUserID(c), in)
	}
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByCustomer godoc
// @Summary      Pagos de un cliente
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/customers/{id}/payments [get]
func (h *PaymentHandler) ListByCustomer(c *fiber.Ctx) error {
	return h.list(c, entity.PartyCustomer)
}

// ListBySupplier godoc
// @Summary      Pagos a un proveedor
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {array}  dto.PaymentResponse
// @Router       /api/suppliers/{id}/payments [get]
func (h *PaymentHandler) ListBySupplier(c *fiber.Ctx) error {
	return h.list(c, entity.PartySupplier)
}

func (h *PaymentHandler) list(c *fiber.Ctx, partyType string) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ListByParty(c.UserContext(), companyID, partyType, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un pago (revierte el saldo)
// @Tags         payments
// @Security     Bearer
// @Param        id   path  string  true  "ID del pago"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if err := h.uc.DeletePayment(c.UserContext(), companyID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
