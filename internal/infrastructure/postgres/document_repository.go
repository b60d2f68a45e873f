package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// docRecord forma común de ventas y compras para las consultas compartidas.
type docRecord struct {
	ID          string
	CompanyID   string
	Code        string
	PartyID     string
	PartyName   string
	Date        time.Time
	Lines       []entity.LineItem
	Payments    []entity.PaymentRecord
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Due         decimal.Decimal
	Status      string
	Note        string
	CancelledAt *time.Time
	ReturnedAt  *time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// docTable describe una tabla de documentos con sus tablas hijas de líneas y pagos.
type docTable struct {
	q         Querier
	table     string // sales | purchases
	codeCol   string // order_id | purchase_id
	partyCol  string // customer_id | supplier_id
	nameCol   string // customer_name | supplier_name
	lines     string
	payments  string
	parentCol string // sale_id | purchase_id
}

func (t docTable) columns() string {
	return `id, company_id, ` + t.codeCol + `, ` + t.partyCol + `, ` + t.nameCol + `, date, subtotal, tax_total,
		discount, total, paid, due, status, note, cancelled_at, returned_at, created_by, created_at, updated_at`
}

func scanDoc(row pgx.Row) (*docRecord, error) {
	var (
		d                  docRecord
		partyID, createdBy *string
	)
	err := row.Scan(&d.ID, &d.CompanyID, &d.Code, &partyID, &d.PartyName, &d.Date, &d.Subtotal, &d.TaxTotal,
		&d.Discount, &d.Total, &d.Paid, &d.Due, &d.Status, &d.Note, &d.CancelledAt, &d.ReturnedAt,
		&createdBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.PartyID, d.CreatedBy = fromNull(partyID), fromNull(createdBy)
	return &d, nil
}

func (t docTable) create(ctx context.Context, d *docRecord) error {
	query := `INSERT INTO ` + t.table + ` (` + t.columns() + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := t.q.Exec(ctx, query, d.ID, d.CompanyID, d.Code, nullIfEmpty(d.PartyID), d.PartyName, d.Date,
		d.Subtotal, d.TaxTotal, d.Discount, d.Total, d.Paid, d.Due, d.Status, d.Note,
		d.CancelledAt, d.ReturnedAt, nullIfEmpty(d.CreatedBy), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}

	batch := &pgx.Batch{}
	for i, l := range d.Lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		batch.Queue(`INSERT INTO `+t.lines+` (id, `+t.parentCol+`, position, item_id, item_name, quantity,
			unit_price, unit_cost, tax_rate, subtotal, tax_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			l.ID, d.ID, i, l.ItemID, l.ItemName, l.Quantity, l.UnitPrice, l.UnitCost, l.TaxRate, l.Subtotal, l.TaxAmount)
	}
	for _, p := range d.Payments {
		t.queuePayment(batch, d.ID, p)
	}
	return t.sendBatch(ctx, batch)
}

func (t docTable) queuePayment(batch *pgx.Batch, docID string, p entity.PaymentRecord) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	batch.Queue(`INSERT INTO `+t.payments+` (id, `+t.parentCol+`, amount, method, reference, date)
		VALUES ($1, $2, $3, $4, $5, $6)`, p.ID, docID, p.Amount, p.Method, p.Reference, p.Date)
}

// sendBatch ejecuta el lote en un solo viaje y cierra los resultados.
func (t docTable) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := t.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert %s detail: %w", t.table, err)
		}
	}
	return br.Close()
}

func (t docTable) get(ctx context.Context, id string, forUpdate bool) (*docRecord, error) {
	query := `SELECT ` + t.columns() + ` FROM ` + t.table + ` WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	d, err := scanDoc(t.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	if err := t.loadDetails(ctx, []*docRecord{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// loadDetails carga líneas y pagos de varios documentos con dos consultas.
func (t docTable) loadDetails(ctx context.Context, docs []*docRecord) error {
	if len(docs) == 0 {
		return nil
	}
	byID := make(map[string]*docRecord, len(docs))
	ids := make([]string, len(docs))
	for i, d := range docs {
		byID[d.ID], ids[i] = d, d.ID
		d.Lines, d.Payments = []entity.LineItem{}, []entity.PaymentRecord{}
	}

	rows, err := t.q.Query(ctx, `SELECT `+t.parentCol+`, id, item_id, item_name, quantity, unit_price, unit_cost,
		tax_rate, subtotal, tax_amount FROM `+t.lines+` WHERE `+t.parentCol+` = ANY($1) ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("list %s: %w", t.lines, err)
	}
	for rows.Next() {
		var (
			parent string
			l      entity.LineItem
		)
		if err := rows.Scan(&parent, &l.ID, &l.ItemID, &l.ItemName, &l.Quantity, &l.UnitPrice, &l.UnitCost,
			&l.TaxRate, &l.Subtotal, &l.TaxAmount); err != nil {
			rows.Close()
			return fmt.Errorf("scan %s: %w", t.lines, err)
		}
		byID[parent].Lines = append(byID[parent].Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = t.q.Query(ctx, `SELECT `+t.parentCol+`, id, amount, method, reference, date
		FROM `+t.payments+` WHERE `+t.parentCol+` = ANY($1) ORDER BY date, id`, ids)
	if err != nil {
		return fmt.Errorf("list %s: %w", t.payments, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			parent string
			p      entity.PaymentRecord
		)
		if err := rows.Scan(&parent, &p.ID, &p.Amount, &p.Method, &p.Reference, &p.Date); err != nil {
			return fmt.Errorf("scan %s: %w", t.payments, err)
		}
		byID[parent].Payments = append(byID[parent].Payments, p)
	}
	return rows.Err()
}

func (t docTable) updateState(ctx context.Context, d *docRecord) error {
	cmd, err := t.q.Exec(ctx, `UPDATE `+t.table+` SET status = $2, paid = $3, due = $4, cancelled_at = $5,
		returned_at = $6, updated_at = $7 WHERE id = $1`,
		d.ID, d.Status, d.Paid, d.Due, d.CancelledAt, d.ReturnedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update %s state: %w", t.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t docTable) addPayment(ctx context.Context, docID string, p entity.PaymentRecord) error {
	batch := &pgx.Batch{}
	t.queuePayment(batch, docID, p)
	return t.sendBatch(ctx, batch)
}

func (t docTable) list(ctx context.Context, f repository.DocumentFilter) ([]*docRecord, int, error) {
	var (
		conds = []string{"company_id = $1"}
		args  = []any{f.CompanyID}
	)
	if f.PartyID != "" {
		args = append(args, f.PartyID)
		conds = append(conds, fmt.Sprintf("%s = $%d", t.partyCol, len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", t.codeCol, len(args)))
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
	if err := t.q.QueryRow(ctx, `SELECT count(*) FROM `+t.table+` WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.table, err)
	}
	list, err := t.query(ctx, `SELECT `+t.columns()+` FROM `+t.table+` WHERE `+where+
		` ORDER BY date DESC, `+t.codeCol+` DESC`+limitOffset(&args, f.Limit, f.Offset), args...)
	return list, total, err
}

func (t docTable) query(ctx context.Context, query string, args ...any) ([]*docRecord, error) {
	rows, err := t.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	list := make([]*docRecord, 0)
	for rows.Next() {
		d, err := scanDoc(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// listByParty documentos completos del tercero, más antiguo primero.
func (t docTable) listByParty(ctx context.Context, partyID string) ([]*docRecord, error) {
	list, err := t.query(ctx, `SELECT `+t.columns()+` FROM `+t.table+` WHERE `+t.partyCol+` = $1
		ORDER BY date, `+t.codeCol, partyID)
	if err != nil {
		return nil, err
	}
	if err := t.loadDetails(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (t docTable) countByParty(ctx context.Context, partyID string) (int, error) {
	var n int
	if err := t.q.QueryRow(ctx, `SELECT count(*) FROM `+t.table+` WHERE `+t.partyCol+` = $1`, partyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s by party: %w", t.table, err)
	}
	return n, nil
}

// lastCode el código con mayor número final: SAL-10000 va después de SAL-9999.
func (t docTable) lastCode(ctx context.Context, companyID string) (string, error) {
	var code string
	err := t.q.QueryRow(ctx, `SELECT `+t.codeCol+` FROM `+t.table+` WHERE company_id = $1
		ORDER BY length(`+t.codeCol+`) DESC, `+t.codeCol+` DESC LIMIT 1`, companyID).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last %s code: %w", t.table, err)
	}
	return code, nil
}

// ── Ventas ──

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct{ t docTable }

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{t: docTable{
		q: q, table: "sales", codeCol: "order_id", partyCol: "customer_id", nameCol: "customer_name",
		lines: "sale_lines", payments: "sale_payments", parentCol: "sale_id",
	}}
}

func saleRecord(s *entity.Sale) *docRecord {
	return &docRecord{
		ID: s.ID, CompanyID: s.CompanyID, Code: s.OrderID, PartyID: s.CustomerID, PartyName: s.CustomerName,
		Date: s.Date, Lines: s.Lines, Payments: s.Payments, Subtotal: s.Subtotal, TaxTotal: s.TaxTotal,
		Discount: s.Discount, Total: s.Total, Paid: s.Paid, Due: s.Due, Status: s.Status, Note: s.Note,
		CancelledAt: s.CancelledAt, ReturnedAt: s.ReturnedAt, CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func (d *docRecord) sale() *entity.Sale {
	if d == nil {
		return nil
	}
	return &entity.Sale{
		ID: d.ID, CompanyID: d.CompanyID, OrderID: d.Code, CustomerID: d.PartyID, CustomerName: d.PartyName,
		Date: d.Date, Lines: d.Lines, Payments: d.Payments, Subtotal: d.Subtotal, TaxTotal: d.TaxTotal,
		Discount: d.Discount, Total: d.Total, Paid: d.Paid, Due: d.Due, Status: d.Status, Note: d.Note,
		CancelledAt: d.CancelledAt, ReturnedAt: d.ReturnedAt, CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func sales(list []*docRecord) []*entity.Sale {
	out := make([]*entity.Sale, len(list))
	for i, d := range list {
		out[i] = d.sale()
	}
	return out
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.t.create(ctx, saleRecord(s))
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	d, err := r.t.get(ctx, id, false)
	return d.sale(), err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	d, err := r.t.get(ctx, id, true)
	return d.sale(), err
}

func (r *SaleRepo) UpdateState(ctx context.Context, s *entity.Sale) error {
	return r.t.updateState(ctx, saleRecord(s))
}

func (r *SaleRepo) AddPayment(ctx context.Context, saleID string, p entity.PaymentRecord) error {
	return r.t.addPayment(ctx, saleID, p)
}

func (r *SaleRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Sale, int, error) {
	list, total, err := r.t.list(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return sales(list), total, nil
}

func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	list, err := r.t.listByParty(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return sales(list), nil
}

func (r *SaleRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	return r.t.countByParty(ctx, customerID)
}

func (r *SaleRepo) LastCode(ctx context.Context, companyID string) (string, error) {
	return r.t.lastCode(ctx, companyID)
}

// ── Compras ──

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct{ t docTable }

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{t: docTable{
		q: q, table: "purchases", codeCol: "purchase_id", partyCol: "supplier_id", nameCol: "supplier_name",
		lines: "purchase_lines", payments: "purchase_payments", parentCol: "purchase_id",
	}}
}

func purchaseRecord(p *entity.Purchase) *docRecord {
	return &docRecord{
		ID: p.ID, CompanyID: p.CompanyID, Code: p.PurchaseID, PartyID: p.SupplierID, PartyName: p.SupplierName,
		Date: p.Date, Lines: p.Lines, Payments: p.Payments, Subtotal: p.Subtotal, TaxTotal: p.TaxTotal,
		Discount: p.Discount, Total: p.Total, Paid: p.Paid, Due: p.Due, Status: p.Status, Note: p.Note,
		CancelledAt: p.CancelledAt, ReturnedAt: p.ReturnedAt, CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (d *docRecord) purchase() *entity.Purchase {
	if d == nil {
		return nil
	}
	return &entity.Purchase{
		ID: d.ID, CompanyID: d.CompanyID, PurchaseID: d.Code, SupplierID: d.PartyID, SupplierName: d.PartyName,
		Date: d.Date, Lines: d.Lines, Payments: d.Payments, Subtotal: d.Subtotal, TaxTotal: d.TaxTotal,
		Discount: d.Discount, Total: d.Total, Paid: d.Paid, Due: d.Due, Status: d.Status, Note: d.Note,
		CancelledAt: d.CancelledAt, ReturnedAt: d.ReturnedAt, CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func purchases(list []*docRecord) []*entity.Purchase {
	out := make([]*entity.Purchase, len(list))
	for i, d := range list {
		out[i] = d.purchase()
	}
	return out
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return r.t.create(ctx, purchaseRecord(p))
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	d, err := r.t.get(ctx, id, false)
	return d.purchase(), err
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	d, err := r.t.get(ctx, id, true)
	return d.purchase(), err
}

func (r *PurchaseRepo) UpdateState(ctx context.Context, p *entity.Purchase) error {
	return r.t.updateState(ctx, purchaseRecord(p))
}

func (r *PurchaseRepo) AddPayment(ctx context.Context, purchaseID string, pay entity.PaymentRecord) error {
	return r.t.addPayment(ctx, purchaseID, pay)
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Purchase, int, error) {
	list, total, err := r.t.list(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return purchases(list), total, nil
}

func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Purchase, error) {
	list, err := r.t.listByParty(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return purchases(list), nil
}

func (r *PurchaseRepo) CountBySupplier(ctx context.Context, supplierID string) (int, error) {
	return r.t.countByParty(ctx, supplierID)
}

func (r *PurchaseRepo) LastCode(ctx context.Context, companyID string) (string, error) {
	return r.t.lastCode(ctx, companyID)
}
