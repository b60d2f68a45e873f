package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo abonos de clientes y pagos a proveedores.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, company_id, code, party_type, party_id, amount, method, note, date, created_by, created_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var (
		p         entity.Payment
		createdBy *string
	)
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Code, &p.PartyType, &p.PartyID, &p.Amount, &p.Method,
		&p.Note, &p.Date, &createdBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedBy = fromNull(createdBy)
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.CompanyID, p.Code, p.PartyType, p.PartyID, p.Amount, p.Method, p.Note, p.Date,
		nullIfEmpty(p.CreatedBy), p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByParty más antiguo primero (orden del estado de cuenta).
func (r *PaymentRepo) ListByParty(ctx context.Context, partyType, partyID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE party_type = $1 AND party_id = $2 ORDER BY date, code`, partyType, partyID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PaymentRepo) CountByParty(ctx context.Context, partyType, partyID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM payments WHERE party_type = $1 AND party_id = $2`,
		partyType, partyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) LastCode(ctx context.Context, companyID, prefix string) (string, error) {
	return lastCode(ctx, r.q, "payments", companyID, strings.ToUpper(prefix)+"-")
}

// lastCode código con mayor número final entre los que empiezan por prefix.
func lastCode(ctx context.Context, q Querier, table, companyID, prefix string) (string, error) {
	var code string
	err := q.QueryRow(ctx, `SELECT code FROM `+table+` WHERE company_id = $1 AND code LIKE $2
		ORDER BY length(code) DESC, code DESC LIMIT 1`, companyID, prefix+"%").Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last %s code: %w", table, err)
	}
	return code, nil
}

// ── Gastos ──

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos operativos.
type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, company_id, code, category, description, amount, date, created_by, created_at`

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var (
		e         entity.Expense
		createdBy *string
	)
	if err := row.Scan(&e.ID, &e.CompanyID, &e.Code, &e.Category, &e.Description, &e.Amount, &e.Date,
		&createdBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.CreatedBy = fromNull(createdBy)
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.CompanyID, e.Code, e.Category, e.Description, e.Amount, e.Date, nullIfEmpty(e.CreatedBy), e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) List(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, int, error) {
	var (
		conds = []string{"company_id = $1"}
		args  = []any{f.CompanyID}
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("lower(category) = lower($%d)", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM expenses WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count expenses: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE `+where+
		` ORDER BY date DESC, code DESC`+limitOffset(&args, f.Limit, f.Offset), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepo) LastCode(ctx context.Context, companyID string) (string, error) {
	return lastCode(ctx, r.q, "expenses", companyID, "")
}
