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

// CustomerUseCase casos de uso para clientes. El saldo solo cambia con ventas y abonos.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, saleRepo repository.SaleRepository, paymentRepo repository.PaymentRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, saleRepo: saleRepo, paymentRepo: paymentRepo}
}

// Create crea un cliente; el saldo actual arranca en el saldo inicial.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	taxID := strings.TrimSpace(in.TaxID)
	if taxID != "" {
		existing, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un cliente con identificación %s", domain.ErrDuplicate, taxID)
		}
	}
	now := time.Now()
	c := &entity.Customer{
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
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// Update actualiza los datos de contacto.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.TaxID != nil && strings.TrimSpace(*in.TaxID) != c.TaxID {
		taxID := strings.TrimSpace(*in.TaxID)
		if taxID != "" {
			other, err := uc.repo.GetByCompanyAndTaxID(ctx, companyID, taxID)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != c.ID {
				return nil, fmt.Errorf("%w: ya existe un cliente con identificación %s", domain.ErrDuplicate, taxID)
			}
		}
		c.TaxID = taxID
	}
	applyContact(&c.Name, &c.Email, &c.Phone, &c.Address, in)
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return customerToResponse(c), nil
}

// List lista clientes con búsqueda y paginación.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, in dto.PartyListRequest) (*dto.PartyListResponse, error) {
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
	for _, c := range list {
		items = append(items, *customerToResponse(c))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un cliente sin ventas ni abonos registrados.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	sales, err := uc.saleRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	payments, err := uc.paymentRepo.CountByParty(ctx, entity.PartyCustomer, id)
	if err != nil {
		return err
	}
	if sales > 0 || payments > 0 {
		return fmt.Errorf("%w: el cliente tiene documentos registrados", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) get(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// applyContact copia los campos de contacto presentes en la petición.
func applyContact(name, email, phone, address *string, in dto.UpdatePartyRequest) {
	if in.Name != nil {
		*name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		*email = *in.Email
	}
	if in.Phone != nil {
		*phone = *in.Phone
	}
	if in.Address != nil {
		*address = *in.Address
	}
}

func customerToResponse(c *entity.Customer) *dto.PartyResponse {
	if c == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:             c.ID,
		CompanyID:      c.CompanyID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		OpeningBalance: c.OpeningBalance,
		CurrentBalance: c.CurrentBalance,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
