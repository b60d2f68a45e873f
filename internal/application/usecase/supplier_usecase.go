package usecase

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
)

// SupplierUseCase casos de uso para proveedores. El saldo solo cambia con compras y pagos.
type SupplierUseCase struct {
	repo         repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	paymentRepo  repository.PaymentRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, purchaseRepo repository.PurchaseRepository, paymentRepo repository.PaymentRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, purchaseRepo: purchaseRepo, paymentRepo: paymentRepo}
}

// Create crea un proveedor; el saldo actual arranca en el saldo inicial.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	if taxID != "" {
		existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un proveedor con identificación %s", domain.ErrDuplicate, taxID)
		}
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           strings.TrimSpace(in.Name),
		TaxID:          taxID,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		OpeningBalance: in.OpeningBalance,
		CurrentBalance: in.OpeningBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	s, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// Update actualiza los datos de contacto.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	s, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.TaxID != nil && strings.TrimSpace(*in.TaxID) != s.TaxID {
		taxID := strings.TrimSpace(*in.TaxID)
		if taxID != "" {
			other, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != s.ID {
				return nil, fmt.Errorf("%w: ya existe un proveedor con identificación %s", domain.ErrDuplicate, taxID)
			}
		}
		s.TaxID = taxID
	}
	applyContact(&s.Name, &s.Email, &s.Phone, &s.Address, in)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// List lista proveedores con búsqueda y paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, in dto.PartyListRequest) (*dto.PartyListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.PartyFilter{
		CompanyID: companyID,
		Search:    strings.TrimSpace(in.Search),
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *supplierToResponse(s))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un proveedor sin ventas ni abonos registrados.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	purchases, err := uc.purchaseRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	payments, err := uc.paymentRepo.CountByParty(ctx, entity.PartySupplier, id)
	if err != nil {
		return err
	}
	if purchases > 0 || payments > 0 {
		return fmt.Errorf("%w: el proveedor tiene documentos registrados", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) get(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func supplierToResponse(s *entity.Supplier) *dto.PartyResponse {
	if s == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:             s.ID,
		CompanyID:      s.CompanyID,
		Name:           s.Name,
		TaxID:          s.TaxID,
		Email:          s.Email,
		Phone:          s.Phone,
		Address:        s.Address,
		OpeningBalance: s.OpeningBalance,
		CurrentBalance: s.CurrentBalance,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
