package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CostMode cómo afecta una entrada/salida al costo promedio del artículo.
type CostMode int

const (
	CostKeep    CostMode = iota // el costo no cambia
	CostAverage                 // entrada de compra: promedio ponderado
	CostReverse                 // salida que deshace una compra
)

// StockChange movimiento de existencias dentro de una transacción. Quantity siempre positiva.
type StockChange struct {
	CompanyID string
	ItemID    string
	UserID    string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	CostMode  CostMode
	Reference string
	Note      string
	Date      time.Time
}

// Increase bloquea la fila del artículo (SELECT FOR UPDATE), suma existencias y registra el movimiento.
func Increase(ctx context.Context, r repository.TxRepos, c StockChange) (*entity.StockMovement, error) {
	item, err := lockItem(ctx, r.Items, c.CompanyID, c.ItemID)
	if err != nil {
		return nil, err
	}
	cost := item.PurchasePrice
	if c.CostMode == CostAverage {
		cost = inventory.WeightedCost(item.Quantity, item.PurchasePrice, c.Quantity, c.UnitCost)
	}
	newQty := item.Quantity.Add(c.Quantity)
	if err := r.Items.UpdateStock(ctx, item.ID, newQty, cost); err != nil {
		return nil, err
	}
	return recordMovement(ctx, r.Movements, c, c.Quantity, newQty, cost)
}

// Decrease bloquea la fila, valida disponibilidad y descuenta existencias.
// Nunca deja la cantidad negativa: devuelve ErrInsufficientStock con el detalle.
func Decrease(ctx context.Context, r repository.TxRepos, c StockChange) (*entity.StockMovement, error) {
	item, err := lockItem(ctx, r.Items, c.CompanyID, c.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity.LessThan(c.Quantity) {
		return nil, fmt.Errorf("%w: %s (disponible %s, solicitado %s)",
			domain.ErrInsufficientStock, item.Name, item.Quantity.String(), c.Quantity.String())
	}
	cost := item.PurchasePrice
	if c.CostMode == CostReverse {
		cost = inventory.ReverseWeightedCost(item.Quantity, item.PurchasePrice, c.Quantity, c.UnitCost)
	}
	newQty := item.Quantity.Sub(c.Quantity)
	if err := r.Items.UpdateStock(ctx, item.ID, newQty, cost); err != nil {
		return nil, err
	}
	return recordMovement(ctx, r.Movements, c, c.Quantity.Neg(), newQty, cost)
}

// SortByItem ordena los cambios por artículo para bloquear filas siempre en el mismo orden
// (dos transacciones concurrentes no se bloquean mutuamente).
func SortByItem(changes []StockChange) {
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].ItemID < changes[j].ItemID })
}

func lockItem(ctx context.Context, items repository.ItemRepository, companyID, itemID string) (*entity.Item, error) {
	item, err := items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CompanyID != companyID {
		return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, itemID)
	}
	return item, nil
}

// recordMovement guarda el movimiento; sin costo explícito se registra el costo vigente del artículo.
func recordMovement(ctx context.Context, movs repository.StockMovementRepository, c StockChange, signed, balance, itemCost decimal.Decimal) (*entity.StockMovement, error) {
	date := c.Date
	if date.IsZero() {
		date = time.Now()
	}
	unitCost := c.UnitCost
	if unitCost.IsZero() {
		unitCost = itemCost
	}
	m := &entity.StockMovement{
		ID:        uuid.New().String(),
		CompanyID: c.CompanyID,
		ItemID:    c.ItemID,
		Type:      c.Type,
		Quantity:  signed,
		UnitCost:  unitCost,
		Balance:   balance,
		Reference: c.Reference,
		Note:      c.Note,
		CreatedBy: c.UserID,
		CreatedAt: date,
	}
	if err := movs.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
