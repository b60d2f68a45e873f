package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// partyTable acceso compartido a customers y suppliers (mismo esquema de columnas).
// Customer y Supplier tienen los mismos campos, así que se escanea en Customer y se convierte.
type partyTable struct {
	q     Querier
	table string
}

const partyColumns = `id, company_id, name, tax_id, email, phone, address, opening_balance, current_balance, created_at, updated_at`

func scanParty(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address,
		&c.OpeningBalance, &c.CurrentBalance, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (t partyTable) create(ctx context.Context, c *entity.Customer) error {
	query := `INSERT INTO ` + t.table + ` (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := t.q.Exec(ctx, query, c.ID, c.CompanyID, c.Name, c.TaxID, c.Email, c.Phone, c.Address,
		c.OpeningBalance, c.CurrentBalance, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func (t partyTable) getOne(ctx context.Context, where string, args ...any) (*entity.Customer, error) {
	c, err := scanParty(t.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM `+t.table+` WHERE `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return c, nil
}

func (t partyTable) list(ctx context.Context, f repository.PartyFilter) ([]*entity.Customer, int, error) {
	where := "company_id = $1"
	args := []any{f.CompanyID}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		where += " AND (name ILIKE $2 OR tax_id ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)"
	}
	var total int
	if err := t.q.QueryRow(ctx, `SELECT count(*) FROM `+t.table+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.table, err)
	}
	list, err := t.query(ctx, `SELECT `+partyColumns+` FROM `+t.table+` WHERE `+where+` ORDER BY name`+
		limitOffset(&args, f.Limit, f.Offset), args...)
	return list, total, err
}

func (t partyTable) query(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := t.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// update solo datos de contacto; los saldos no se tocan.
func (t partyTable) update(ctx context.Context, c *entity.Customer) error {
	cmd, err := t.q.Exec(ctx, `UPDATE `+t.table+` SET name = $2, tax_id = $3, email = $4, phone = $5,
		address = $6, updated_at = $7 WHERE id = $1`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update %s: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t partyTable) delete(ctx context.Context, id string) error {
	cmd, err := t.q.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// addBalance incremento atómico en la misma sentencia; nunca lectura-modificación-escritura.
func (t partyTable) addBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	cmd, err := t.q.Exec(ctx, `UPDATE `+t.table+` SET current_balance = current_balance + $2, updated_at = now()
		WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("update %s balance: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t partyTable) withBalance(ctx context.Context, companyID string) ([]*entity.Customer, error) {
	return t.query(ctx, `SELECT `+partyColumns+` FROM `+t.table+`
		WHERE company_id = $1 AND current_balance > 0 ORDER BY current_balance DESC, name`, companyID)
}

// ── Clientes ──

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct{ t partyTable }

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{t: partyTable{q: q, table: "customers"}}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return r.t.create(ctx, c) }

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.t.getOne(ctx, "id = $1", id)
}

func (r *CustomerRepo) GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Customer, error) {
	return r.t.getOne(ctx, "company_id = $1 AND tax_id = $2", companyID, taxID)
}

func (r *CustomerRepo) List(ctx context.Context, f repository.PartyFilter) ([]*entity.Customer, int, error) {
	return r.t.list(ctx, f)
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return r.t.update(ctx, c) }

func (r *CustomerRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

func (r *CustomerRepo) AddBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.t.addBalance(ctx, id, delta)
}

func (r *CustomerRepo) ListWithBalance(ctx context.Context, companyID string) ([]*entity.Customer, error) {
	return r.t.withBalance(ctx, companyID)
}

// ── Proveedores ──

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct{ t partyTable }

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{t: partyTable{q: q, table: "suppliers"}}
}

func asSupplier(c *entity.Customer) *entity.Supplier {
	if c == nil {
		return nil
	}
	s := entity.Supplier(*c)
	return &s
}

func asSuppliers(list []*entity.Customer) []*entity.Supplier {
	out := make([]*entity.Supplier, len(list))
	for i, c := range list {
		out[i] = asSupplier(c)
	}
	return out
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	c := entity.Customer(*s)
	return r.t.create(ctx, &c)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	c, err := r.t.getOne(ctx, "id = $1", id)
	return asSupplier(c), err
}

func (r *SupplierRepo) GetByCompanyAndTaxID(ctx context.Context, companyID, taxID string) (*entity.Supplier, error) {
	c, err := r.t.getOne(ctx, "company_id = $1 AND tax_id = $2", companyID, taxID)
	return asSupplier(c), err
}

func (r *SupplierRepo) List(ctx context.Context, f repository.PartyFilter) ([]*entity.Supplier, int, error) {
	list, total, err := r.t.list(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return asSuppliers(list), total, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	c := entity.Customer(*s)
	return r.t.update(ctx, &c)
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error { return r.t.delete(ctx, id) }

func (r *SupplierRepo) AddBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.t.addBalance(ctx, id, delta)
}

func (r *SupplierRepo) ListWithBalance(ctx context.Context, companyID string) ([]*entity.Supplier, error) {
	list, err := r.t.withBalance(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return asSuppliers(list), nil
}
