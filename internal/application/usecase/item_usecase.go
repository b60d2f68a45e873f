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
	"github.com/shopspring/decimal"
)

var maxTaxRate = decimal.NewFromInt(100)

// ItemUseCase casos de uso CRUD del catálogo. La cantidad solo cambia vía movimientos de stock.
type ItemUseCase struct {
	repo     repository.ItemRepository
	txRunner repository.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, txRunner repository.TxRunner) *ItemUseCase {
	return &ItemUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un artículo. Devuelve ErrDuplicate si el SKU ya existe en la empresa.
// Una existencia inicial positiva queda registrada como movimiento de ajuste.
func (uc *ItemUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if err := validateItemAmounts(&in.Price, &in.PurchasePrice, &in.MinQuantity, &in.TaxRate); err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: la existencia inicial no puede ser negativa", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, in.SKU)
	}
	unit := in.Unit
	if unit == "" {
		unit = "und"
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          strings.TrimSpace(in.Name),
		SKU:           in.SKU,
		Price:         in.Price,
		PurchasePrice: in.PurchasePrice,
		Quantity:      in.Quantity,
		MinQuantity:   in.MinQuantity,
		Category:      in.Category,
		Brand:         in.Brand,
		Unit:          unit,
		TaxRate:       in.TaxRate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		if !item.Quantity.IsPositive() {
			return nil
		}
		return r.Movements.Create(ctx, &entity.StockMovement{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ItemID:    item.ID,
			Type:      entity.MovementAdjustment,
			Quantity:  item.Quantity,
			UnitCost:  item.PurchasePrice,
			Balance:   item.Quantity,
			Reference: "INVENTARIO INICIAL",
			CreatedBy: userID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// GetByID obtiene un artículo de la empresa.
func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// Update actualiza datos del catálogo (nunca la cantidad).
func (uc *ItemUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := validateItemAmounts(in.Price, in.PurchasePrice, in.MinQuantity, in.TaxRate); err != nil {
		return nil, err
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) != item.SKU {
		sku := strings.TrimSpace(*in.SKU)
		other, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, sku)
		}
		item.SKU = sku
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.PurchasePrice != nil {
		item.PurchasePrice = *in.PurchasePrice
	}
	if in.MinQuantity != nil {
		item.MinQuantity = *in.MinQuantity
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Brand != nil {
		item.Brand = *in.Brand
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.TaxRate != nil {
		item.TaxRate = *in.TaxRate
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List lista artículos con búsqueda, filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, companyID string, in dto.ItemListRequest) (*dto.ItemListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ItemFilter{
		CompanyID: companyID,
		Search:    strings.TrimSpace(in.Search),
		Category:  in.Category,
		Brand:     in.Brand,
		LowStock:  in.LowStock,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete elimina un artículo sin historial; con ventas, compras o movimientos devuelve ErrConflict.
func (uc *ItemUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	used, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el artículo tiene movimientos registrados", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) get(ctx context.Context, companyID, id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func validateItemAmounts(price, purchasePrice, minQty, taxRate *decimal.Decimal) error {
	for _, v := range []*decimal.Decimal{price, purchasePrice, minQty} {
		if v != nil && v.IsNegative() {
			return fmt.Errorf("%w: los valores no pueden ser negativos", domain.ErrInvalidInput)
		}
	}
	if taxRate != nil && (taxRate.IsNegative() || taxRate.GreaterThan(maxTaxRate)) {
		return fmt.Errorf("%w: tasa de impuesto fuera de rango", domain.ErrInvalidInput)
	}
	return nil
}

// ToItemResponse convierte un artículo a DTO.
func ToItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:            i.ID,
		CompanyID:     i.CompanyID,
		Name:          i.Name,
		SKU:           i.SKU,
		Price:         i.Price,
		PurchasePrice: i.PurchasePrice,
		Quantity:      i.Quantity,
		MinQuantity:   i.MinQuantity,
		Category:      i.Category,
		Brand:         i.Brand,
		Unit:          i.Unit,
		TaxRate:       i.TaxRate,
		LowStock:      i.IsLowStock(),
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
