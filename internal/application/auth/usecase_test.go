package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/jhoicas/PuntoVenta-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-pruebas"

func newAuth() (*AuthUseCase, *memory.Store) {
	store := memory.NewStore()
	return NewAuthUseCase(store.Users(), store.Roles(), store.Companies(), JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "puntoventa-test"}), store
}

func TestBootstrapYLogin(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()

	res, err := uc.Bootstrap(ctx, "Tienda Central", "Admin@Tienda.co", "clave-segura")
	require.NoError(t, err)

	roles, err := store.Roles().ListByCompany(ctx, res.CompanyID)
	require.NoError(t, err)
	require.Len(t, roles, 2)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.PermAll}, out.Permissions)
	assert.Equal(t, res.UserID, out.User.ID)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)
	assert.Equal(t, res.CompanyID, claims.CompanyID)
	assert.Equal(t, res.RoleID, claims.RoleID)

	_, err = uc.Bootstrap(ctx, "Otra", "admin@tienda.co", "clave-segura")
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestLogin_Fallos(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Bootstrap(ctx, "Tienda", "admin@tienda.co", "clave-segura")
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestRegisterUser_RolDeLaEmpresa(t *testing.T) {
	uc, store := newAuth()
	ctx := context.Background()
	res, err := uc.Bootstrap(ctx, "Tienda", "admin@tienda.co", "clave-segura")
	require.NoError(t, err)
	cashier, err := store.Roles().GetByCompanyAndName(ctx, res.CompanyID, "Cajero")
	require.NoError(t, err)
	require.NotNil(t, cashier)

	u, err := uc.RegisterUser(ctx, res.CompanyID, dto.RegisterRequest{Email: "caja1@tienda.co", Password: "clave-caja", RoleID: cashier.ID})
	require.NoError(t, err)
	assert.Equal(t, "caja1@tienda.co", u.Name)

	_, err = uc.RegisterUser(ctx, "otra-empresa", dto.RegisterRequest{Email: "caja2@tienda.co", Password: "clave-caja", RoleID: cashier.ID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	users, err := uc.ListUsers(ctx, res.CompanyID)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
