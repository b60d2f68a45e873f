package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y arranque de una empresa.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario en la empresa con un rol de esa misma empresa.
// Hashea el password con bcrypt. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, companyID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil || role.CompanyID != companyID {
		return nil, fmt.Errorf("%w: rol %s", domain.ErrNotFound, in.RoleID)
	}
	user, err := newUser(companyID, role.ID, email, in.Name, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token, usuario y permisos del rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.RoleID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		User:        *toUserResponse(user),
		Permissions: role.Permissions,
	}, nil
}

// ListUsers lista los usuarios de la empresa.
func (uc *AuthUseCase) ListUsers(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	list, err := uc.userRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// BootstrapResult identificadores creados por Bootstrap.
type BootstrapResult struct {
	CompanyID string
	RoleID    string
	UserID    string
}

// Bootstrap crea una empresa con los roles base (Administrador con "*", Cajero) y su usuario administrador.
// Si el email ya existe no crea nada y devuelve ErrEmailAlreadyExists.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, companyName, email, password string) (*BootstrapResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if companyName == "" || email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: empresa, email y password (mínimo 8) son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      companyName,
		Currency:  "COP",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	admin := &entity.Role{
		ID: uuid.New().String(), CompanyID: company.ID, Name: "Administrador",
		Permissions: []string{entity.PermAll}, CreatedAt: now, UpdatedAt: now,
	}
	cashier := &entity.Role{
		ID: uuid.New().String(), CompanyID: company.ID, Name: "Cajero",
		Permissions: []string{
			entity.PermItemsRead, entity.PermCustomersRead, entity.PermCustomersWrite,
			entity.PermSalesRead, entity.PermSalesWrite, entity.PermPaymentsWrite, entity.PermPOS,
		},
		CreatedAt: now, UpdatedAt: now,
	}
	for _, r := range []*entity.Role{admin, cashier} {
		if err := uc.roleRepo.Create(ctx, r); err != nil {
			return nil, err
		}
	}
	user, err := newUser(company.ID, admin.ID, email, "Administrador", password)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &BootstrapResult{CompanyID: company.ID, RoleID: admin.ID, UserID: user.ID}, nil
}

func newUser(companyID, roleID, email, name, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		RoleID:       roleID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		RoleID:    u.RoleID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
