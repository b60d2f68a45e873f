package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
// Solo cuentan documentos vigentes: anulados y devueltos quedan fuera.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const countableStatus = `status NOT IN ('Cancelled', 'Return')`

// GetSalesMetrics agrega cabeceras y costo de ventas (Σ cantidad × costo congelado en la línea).
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, companyID string, from, to time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COUNT(*)                       AS sale_count,
	    COALESCE(SUM(s.subtotal), 0)   AS subtotal,
	    COALESCE(SUM(s.tax_total), 0)  AS tax,
	    COALESCE(SUM(s.discount), 0)   AS discount,
	    COALESCE(SUM(s.total), 0)      AS total,
	    COALESCE(SUM((SELECT SUM(l.quantity * l.unit_cost) FROM sale_lines l WHERE l.sale_id = s.id)), 0) AS cogs
	FROM sales s
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.` + countableStatus

	var m repository.SalesMetrics
	err := r.pool.QueryRow(ctx, query, companyID, from, to).Scan(
		&m.Count, &m.Subtotal, &m.Tax, &m.Discount, &m.Total, &m.COGS,
	)
	if err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("reports.GetSalesMetrics: %w", err)
	}
	return m, nil
}

func (r *ReportRepo) GetPurchasesTotal(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM purchases
		WHERE company_id = $1 AND date BETWEEN $2 AND $3 AND `+countableStatus,
		companyID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetPurchasesTotal: %w", err)
	}
	return total, nil
}

func (r *ReportRepo) GetExpensesTotal(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE company_id = $1 AND date BETWEEN $2 AND $3`,
		companyID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reports.GetExpensesTotal: %w", err)
	}
	return total, nil
}

// GetTopItems artículos ordenados por ingreso y luego por cantidad.
func (r *ReportRepo) GetTopItems(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopItemResult, error) {
	const query = `
	SELECT
	    l.item_id,
	    COALESCE(i.sku, '')               AS sku,
	    MAX(l.item_name)                  AS name,
	    SUM(l.quantity)                   AS quantity,
	    SUM(l.subtotal)                   AS revenue,
	    SUM(l.quantity * l.unit_cost)     AS cogs
	FROM sales s
	JOIN sale_lines l ON l.sale_id = s.id
	LEFT JOIN items i ON i.id = l.item_id
	WHERE s.company_id = $1
	  AND s.date BETWEEN $2 AND $3
	  AND s.` + countableStatus + `
	GROUP BY l.item_id, i.sku
	ORDER BY revenue DESC, quantity DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.GetTopItems: %w", err)
	}
	defer rows.Close()

	results := make([]repository.TopItemResult, 0, limit)
	for rows.Next() {
		var row repository.TopItemResult
		if err := rows.Scan(&row.ItemID, &row.SKU, &row.Name, &row.Quantity, &row.Revenue, &row.COGS); err != nil {
			return nil, fmt.Errorf("reports.GetTopItems scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
