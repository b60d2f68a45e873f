package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// RoleUseCase administración de roles y sus permisos.
type RoleUseCase struct {
	repo     repository.RoleRepository
	userRepo repository.UserRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, userRepo repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo, userRepo: userRepo}
}

// Create crea un rol. El nombre es único por empresa.
func (uc *RoleUseCase) Create(ctx context.Context, companyID string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	perms, err := normalizePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByCompanyAndName(ctx, companyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el rol %s ya existe", domain.ErrDuplicate, name)
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Permissions: perms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List lista los roles de la empresa.
func (uc *RoleUseCase) List(ctx context.Context, companyID string) ([]dto.RoleResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

// Update reemplaza nombre y permisos del rol.
func (uc *RoleUseCase) Update(ctx context.Context, companyID, id string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	perms, err := normalizePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name != role.Name {
		other, err := uc.repo.GetByCompanyAndName(ctx, companyID, name)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("%w: el rol %s ya existe", domain.ErrDuplicate, name)
		}
	}
	role.Name = name
	role.Permissions = perms
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Delete elimina un rol sin usuarios asignados.
func (uc *RoleUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	n, err := uc.userRepo.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: el rol tiene %d usuarios asignados", domain.ErrConflict, n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *RoleUseCase) get(ctx context.Context, companyID, id string) (*entity.Role, error) {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil || role.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

// normalizePermissions valida cada tag contra el catálogo y elimina duplicados.
func normalizePermissions(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if !entity.IsValidPermission(p) {
			return nil, fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, p)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: el rol necesita al menos un permiso", domain.ErrInvalidInput)
	}
	slices.Sort(out)
	return out, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Name:        r.Name,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
