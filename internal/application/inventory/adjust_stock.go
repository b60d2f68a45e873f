package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// AdjustStockUseCase ajustes manuales de existencias y consulta del kardex.
type AdjustStockUseCase struct {
	txRunner repository.TxRunner
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner repository.TxRunner, itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, itemRepo: itemRepo, movRepo: movRepo}
}

// AdjustStock suma (Quantity > 0) o resta (Quantity < 0) existencias en una transacción.
// El costo promedio no cambia con un ajuste.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, companyID, userID, itemID string, in dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if itemID == "" || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		change := StockChange{
			CompanyID: companyID,
			ItemID:    itemID,
			UserID:    userID,
			Type:      entity.MovementAdjustment,
			Quantity:  in.Quantity.Abs(),
			Reference: "AJUSTE",
			Note:      in.Reason,
			Date:      time.Now(),
		}
		var err error
		if in.Quantity.IsPositive() {
			mov, err = Increase(ctx, r, change)
		} else {
			mov, err = Decrease(ctx, r, change)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ListMovements devuelve el kardex del artículo (más reciente primero).
func (uc *AdjustStockUseCase) ListMovements(ctx context.Context, companyID, itemID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse convierte un movimiento a DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Balance:   m.Balance,
		Reference: m.Reference,
		Note:      m.Note,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}
