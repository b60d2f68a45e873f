package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCreate_NormalizaPermisos(t *testing.T) {
	store := memory.NewStore()
	uc := NewRoleUseCase(store.Roles(), store.Users())
	ctx := context.Background()

	out, err := uc.Create(ctx, companyID, dto.RoleRequest{
		Name:        "Cajero",
		Permissions: []string{entity.PermSalesWrite, entity.PermPOS, entity.PermSalesWrite},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.PermPOS, entity.PermSalesWrite}, out.Permissions)

	_, err = uc.Create(ctx, companyID, dto.RoleRequest{Name: "cajero", Permissions: []string{entity.PermPOS}})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = uc.Create(ctx, companyID, dto.RoleRequest{Name: "Raro", Permissions: []string{"nave:pilotar"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRoleDelete_ConUsuarios(t *testing.T) {
	store := memory.NewStore()
	uc := NewRoleUseCase(store.Roles(), store.Users())
	ctx := context.Background()

	role, err := uc.Create(ctx, companyID, dto.RoleRequest{Name: "Bodega", Permissions: []string{entity.PermItemsWrite}})
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", CompanyID: companyID, RoleID: role.ID, Email: "b@tienda.co"}))

	assert.True(t, errors.Is(uc.Delete(ctx, companyID, role.ID), domain.ErrConflict))
}

func TestPermissionService(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Roles().Create(ctx, &entity.Role{ID: "admin", CompanyID: companyID, Name: "Admin", Permissions: []string{entity.PermAll}}))
	require.NoError(t, store.Roles().Create(ctx, &entity.Role{ID: "caja", CompanyID: companyID, Name: "Caja", Permissions: []string{entity.PermPOS}}))
	svc := NewPermissionService(store.Roles())

	tests := []struct {
		name    string
		company string
		role    string
		perm    string
		want    bool
	}{
		{"comodín", companyID, "admin", entity.PermRolesWrite, true},
		{"permiso concedido", companyID, "caja", entity.PermPOS, true},
		{"permiso no concedido", companyID, "caja", entity.PermItemsWrite, false},
		{"rol de otra empresa", "otra", "admin", entity.PermPOS, false},
		{"rol inexistente", companyID, "nada", entity.PermPOS, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.HasPermission(ctx, tt.company, tt.role, tt.perm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestExpenseCreate_Consecutivo(t *testing.T) {
	store := memory.NewStore()
	uc := NewExpenseUseCase(store, store.Repos().Expenses)
	ctx := context.Background()

	first, err := uc.Create(ctx, companyID, "u", dto.CreateExpenseRequest{Category: "Arriendo", Amount: dec("500")})
	require.NoError(t, err)
	second, err := uc.Create(ctx, companyID, "u", dto.CreateExpenseRequest{Category: "Servicios", Amount: dec("80")})
	require.NoError(t, err)
	assert.Equal(t, "EXP-0001", first.Code)
	assert.Equal(t, "EXP-0002", second.Code)

	_, err = uc.Create(ctx, companyID, "u", dto.CreateExpenseRequest{Category: "x", Amount: dec("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.List(ctx, companyID, dto.ExpenseListRequest{Category: "arriendo"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, uc.Delete(ctx, companyID, first.ID))
}
