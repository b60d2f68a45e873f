package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// PermissionService resuelve si el rol de un usuario concede un permiso.
// Es el único punto de la aplicación que conoce la evaluación de permisos.
type PermissionService struct {
	roleRepo repository.RoleRepository
}

// NewPermissionService construye el servicio.
func NewPermissionService(roleRepo repository.RoleRepository) *PermissionService {
	return &PermissionService{roleRepo: roleRepo}
}

// HasPermission informa si el rol (de la empresa indicada) concede el permiso.
// Devuelve false (sin error) si el rol no existe o es de otra empresa.
// Devuelve error solo ante fallos de infraestructura.
func (s *PermissionService) HasPermission(ctx context.Context, companyID, roleID, permission string) (bool, error) {
	if companyID == "" || roleID == "" || permission == "" {
		return false, fmt.Errorf("permisos: companyID, roleID y permiso son obligatorios")
	}
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return false, err
	}
	if role == nil || role.CompanyID != companyID {
		return false, nil
	}
	return role.Can(permission), nil
}
