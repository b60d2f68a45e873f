// Package ledger arma los estados de cuenta de clientes y proveedores a partir de sus documentos.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/ledger"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StatementPDFGenerator genera el estado de cuenta imprimible.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, company *entity.Company, st *dto.StatementResponse) ([]byte, error)
}

// StatementUseCase estados de cuenta. El saldo se reconstruye en cada lectura; nunca se persiste.
type StatementUseCase struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	paymentRepo  repository.PaymentRepository
	companyRepo  repository.CompanyRepository
	pdf          StatementPDFGenerator
}

// NewStatementUseCase construye el caso de uso. pdf puede ser nil.
func NewStatementUseCase(
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanyRepository,
	pdf StatementPDFGenerator,
) *StatementUseCase {
	return &StatementUseCase{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		companyRepo:  companyRepo,
		pdf:          pdf,
	}
}

// CustomerStatement estado de cuenta del cliente. from/to nil = todo el historial.
//
// Dos consultas en paralelo:
//  1. ListByCustomer       → ventas con sus pagos embebidos
//  2. ListByParty(customer) → abonos independientes
func (uc *StatementUseCase) CustomerStatement(ctx context.Context, companyID, customerID string, from, to *time.Time) (*dto.StatementResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	type salesResult struct {
		sales []*entity.Sale
		err   error
	}
	type paymentsResult struct {
		payments []*entity.Payment
		err      error
	}
	salesCh := make(chan salesResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		sales, err := uc.saleRepo.ListByCustomer(ctx, customerID)
		salesCh <- salesResult{sales, err}
	}()
	go func() {
		payments, err := uc.paymentRepo.ListByParty(ctx, entity.PartyCustomer, customerID)
		paymentsCh <- paymentsResult{payments, err}
	}()

	sales := <-salesCh
	payments := <-paymentsCh
	if sales.err != nil {
		return nil, fmt.Errorf("estado de cuenta: ventas: %w", sales.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("estado de cuenta: abonos: %w", payments.err)
	}

	entries := make([]ledger.Entry, 0, len(sales.sales)*2+len(payments.payments))
	for _, s := range sales.sales {
		entries = append(entries, documentEntries(s.OrderID, ledger.KindSale, "Venta", s.Date, s.Status, s.Total, s.Payments, s.ReturnedAt)...)
	}
	entries = append(entries, paymentEntries(payments.payments, "Abono")...)

	st := ledger.Window(customer.OpeningBalance, entries, from, to)
	return &dto.StatementResponse{
		PartyType:      entity.PartyCustomer,
		PartyID:        customer.ID,
		PartyName:      customer.Name,
		CurrentBalance: customer.CurrentBalance,
		Statement:      st,
	}, nil
}

// SupplierStatement estado de cuenta del proveedor (lo que se le debe).
func (uc *StatementUseCase) SupplierStatement(ctx context.Context, companyID, supplierID string, from, to *time.Time) (*dto.StatementResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	type purchasesResult struct {
		purchases []*entity.Purchase
		err       error
	}
	type paymentsResult struct {
		payments []*entity.Payment
		err      error
	}
	purchasesCh := make(chan purchasesResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		purchases, err := uc.purchaseRepo.ListBySupplier(ctx, supplierID)
		purchasesCh <- purchasesResult{purchases, err}
	}()
	go func() {
		payments, err := uc.paymentRepo.ListByParty(ctx, entity.PartySupplier, supplierID)
		paymentsCh <- paymentsResult{payments, err}
	}()

	purchases := <-purchasesCh
	payments := <-paymentsCh
	if purchases.err != nil {
		return nil, fmt.Errorf("estado de cuenta: compras: %w", purchases.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("estado de cuenta: pagos: %w", payments.err)
	}

	entries := make([]ledger.Entry, 0, len(purchases.purchases)*2+len(payments.payments))
	for _, p := range purchases.purchases {
		entries = append(entries, documentEntries(p.PurchaseID, ledger.KindPurchase, "Compra", p.Date, p.Status, p.Total, p.Payments, p.ReturnedAt)...)
	}
	entries = append(entries, paymentEntries(payments.payments, "Pago")...)

	st := ledger.Window(supplier.OpeningBalance, entries, from, to)
	return &dto.StatementResponse{
		PartyType:      entity.PartySupplier,
		PartyID:        supplier.ID,
		PartyName:      supplier.Name,
		CurrentBalance: supplier.CurrentBalance,
		Statement:      st,
	}, nil
}

// StatementPDF genera el PDF del estado de cuenta de un cliente o proveedor.
func (uc *StatementUseCase) StatementPDF(ctx context.Context, companyID, partyType, partyID string, from, to *time.Time) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	var st *dto.StatementResponse
	switch partyType {
	case entity.PartyCustomer:
		st, err = uc.CustomerStatement(ctx, companyID, partyID, from, to)
	case entity.PartySupplier:
		st, err = uc.SupplierStatement(ctx, companyID, partyID, from, to)
	default:
		return nil, "", domain.ErrInvalidInput
	}
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	pdfBytes, err = uc.pdf.GenerateStatementPDF(ctx, company, st)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("estado_cuenta_%s.pdf", partyID), nil
}

// documentEntries filas de un documento: cargo por el total, un abono por cada pago embebido
// y, si fue devuelto, un crédito por el total en la fecha de devolución. Los anulados no aparecen.
func documentEntries(code, kind, label string, date time.Time, status string, total decimal.Decimal, payments []entity.PaymentRecord, returnedAt *time.Time) []ledger.Entry {
	if status == entity.DocStatusCancelled {
		return nil
	}
	out := make([]ledger.Entry, 0, len(payments)+2)
	out = append(out, ledger.Entry{
		Date:        date,
		Kind:        kind,
		Reference:   code,
		Description: label + " " + code,
		Debit:       total,
		Credit:      decimal.Zero,
	})
	for _, p := range payments {
		out = append(out, ledger.Entry{
			Date:        p.Date,
			Kind:        ledger.KindPayment,
			Reference:   code,
			Description: "Pago " + p.Method + " " + code,
			Debit:       decimal.Zero,
			Credit:      p.Amount,
		})
	}
	if status == entity.DocStatusReturn {
		at := date
		if returnedAt != nil {
			at = *returnedAt
		}
		out = append(out, ledger.Entry{
			Date:        at,
			Kind:        ledger.KindReturn,
			Reference:   code,
			Description: "Devolución " + code,
			Debit:       decimal.Zero,
			Credit:      total,
		})
	}
	return out
}

func paymentEntries(payments []*entity.Payment, label string) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(payments))
	for _, p := range payments {
		desc := label + " " + p.Code
		if p.Note != "" {
			desc += " - " + p.Note
		}
		out = append(out, ledger.Entry{
			Date:        p.Date,
			Kind:        ledger.KindPayment,
			Reference:   p.Code,
			Description: desc,
			Debit:       decimal.Zero,
			Credit:      p.Amount,
		})
	}
	return out
}
