package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
)

// partyService lo que comparten CustomerUseCase y SupplierUseCase.
type partyService interface {
	Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error)
	List(ctx context.Context, companyID string, in dto.PartyListRequest) (*dto.PartyListResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

var (
	_ partyService = (*usecase.CustomerUseCase)(nil)
	_ partyService = (*usecase.SupplierUseCase)(nil)
)

// PartyHandler CRUD de clientes o proveedores (mismas rutas bajo /customers y /suppliers).
type PartyHandler struct {
	svc partyService
}

// NewCustomerHandler handler de /api/customers.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *PartyHandler { return &PartyHandler{svc: uc} }

// NewSupplierHandler handler de /api/suppliers.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *PartyHandler { return &PartyHandler{svc: uc} }

// Create godoc
// @Summary      Crear cliente (o proveedor en /api/suppliers)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartyRequest  true  "Datos y saldo inicial"
// @Success      201   {object}  dto.PartyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *PartyHandler) Create(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.CreatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.PartyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *PartyHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.svc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nombre, NIT, email o teléfono"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PartyListResponse
// @Router       /api/customers [get]
func (h *PartyHandler) List(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	out, err := h.svc.List(c.UserContext(), companyID, dto.PartyListRequest{
		PageRequest: pageFromQuery(c),
		Search:      c.Query("search"),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos de contacto
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdatePartyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PartyResponse
// @Router       /api/customers/{id} [put]
func (h *PartyHandler) Update(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	var in dto.UpdatePartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.svc.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente sin documentos
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *PartyHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := requireCompany(c)
	if !ok {
		return nil
	}
	if err := h.svc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
