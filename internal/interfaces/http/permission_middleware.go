package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
)

// permissionChecker contrato mínimo del middleware; lo implementa *usecase.PermissionService.
type permissionChecker interface {
	HasPermission(ctx context.Context, companyID, roleID, permission string) (bool, error)
}

// RequirePermission verifica que el rol del token conceda el permiso.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay company_id/role_id en el contexto.
//   - 403 si el rol no tiene el permiso (o ya no existe).
//   - 503 si falla la consulta del rol.
func RequirePermission(permission string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, roleID := GetCompanyID(c), GetRoleID(c)
		if companyID == "" || roleID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id o role_id no encontrado en el token",
			})
		}

		allowed, err := checker.HasPermission(c.UserContext(), companyID, roleID, permission)
		if err != nil {
			requestLogger(c).Error().Err(err).Str("permission", permission).Msg("verificar permiso")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol no tiene el permiso '" + permission + "'",
			})
		}
		return c.Next()
	}
}
