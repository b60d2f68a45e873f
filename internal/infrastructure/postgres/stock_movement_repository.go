package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo persiste los movimientos de stock.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, item_id, type, quantity, unit_cost, balance, reference, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ItemID, m.Type, m.Quantity, m.UnitCost, m.Balance,
		m.Reference, m.Note, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByItem más reciente primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	args := []any{itemID}
	query := `
		SELECT id, company_id, item_id, type, quantity, unit_cost, balance, reference, note, created_by, created_at
		FROM stock_movements WHERE item_id = $1 ORDER BY created_at DESC, id DESC` + limitOffset(&args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var (
			m         entity.StockMovement
			createdBy *string
		)
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost, &m.Balance,
			&m.Reference, &m.Note, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.CreatedBy = fromNull(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
