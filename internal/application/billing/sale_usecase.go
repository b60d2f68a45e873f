package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/numbering"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
	"github.com/shopspring/decimal"
)

// SaleUseCase ventas: creación con descuento de inventario, abonos, anulación y devolución.
// Toda escritura corre en una sola transacción (TxRunner): si algo falla no queda nada a medias.
type SaleUseCase struct {
	txRunner     repository.TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	pdf          ReceiptPDFGenerator
	now          func() time.Time
}

// NewSaleUseCase construye el caso de uso. pdf puede ser nil si no se generan facturas imprimibles.
func NewSaleUseCase(
	txRunner repository.TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	pdf ReceiptPDFGenerator,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		pdf:          pdf,
		now:          time.Now,
	}
}

// CreateSale valida existencias, asigna el código SAL-nnnn, guarda la venta, descuenta inventario
// y suma el saldo pendiente a la cuenta del cliente, todo en la misma transacción.
// Un artículo inexistente o sin existencia suficiente aborta la operación completa.
func (uc *SaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.DocumentResponse, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}

	var customer *entity.Customer
	if in.CustomerID != "" {
		c, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
		}
		customer = c
	}

	now := uc.now()
	date := docDate(in.Date, now)
	payments, paid, err := buildPayments(in.Payments, date)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		// 1) Leer y bloquear cada artículo; verificar existencias
		items, err := lockItems(ctx, r.Items, companyID, in.Items)
		if err != nil {
			return err
		}
		if err := checkAvailability(in.Items, items); err != nil {
			return err
		}

		// 2) Totales
		lines, totals, err := buildLines(in.Items, items,
			func(it *entity.Item) decimal.Decimal { return it.Price },
			func(it *entity.Item, _ decimal.Decimal) decimal.Decimal { return it.PurchasePrice },
			in.Discount)
		if err != nil {
			return err
		}
		if paid.GreaterThan(totals.Total) {
			return fmt.Errorf("%w: el pago (%s) supera el total (%s)", domain.ErrInvalidInput, paid, totals.Total)
		}
		due := totals.Total.Sub(paid)
		if customer == nil && due.IsPositive() {
			return fmt.Errorf("%w: una venta de mostrador debe pagarse completa", domain.ErrInvalidInput)
		}
		status, err := resolveStatus(in.Status, due)
		if err != nil {
			return err
		}

		// 3) Siguiente código
		code, err := numbering.Next(ctx, r.Sequences, companyID, sequence.PrefixSale, func(ctx context.Context) (string, error) {
			return r.Sales.LastCode(ctx, companyID)
		})
		if err != nil {
			return err
		}

		// 4) Guardar la venta
		sale = &entity.Sale{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			OrderID:   code,
			Date:      date,
			Lines:     lines,
			Payments:  payments,
			Subtotal:  totals.Subtotal,
			TaxTotal:  totals.Tax,
			Discount:  totals.Discount,
			Total:     totals.Total,
			Paid:      paid,
			Due:       due,
			Status:    status,
			Note:      in.Note,
			CreatedBy: userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if customer != nil {
			sale.CustomerID, sale.CustomerName = customer.ID, customer.Name
		}
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}

		// 5) Descontar inventario
		if err := uc.moveStock(ctx, r, sale, userID, entity.MovementSale, false); err != nil {
			return err
		}

		// 6) Cuenta del cliente
		if customer != nil && due.IsPositive() {
			return r.Customers.AddBalance(ctx, customer.ID, due)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// AddPayment registra un abono sobre una venta pendiente; al saldar la venta pasa a Fulfilled.
func (uc *SaleUseCase) AddPayment(ctx context.Context, companyID, saleID string, in dto.PaymentLineRequest) (*dto.DocumentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		s, err := lockSale(ctx, r.Sales, companyID, saleID)
		if err != nil {
			return err
		}
		if s.Status != entity.DocStatusPending {
			return fmt.Errorf("%w: la venta %s está %s", domain.ErrConflict, s.OrderID, s.Status)
		}
		if in.Amount.GreaterThan(s.Due) {
			return fmt.Errorf("%w: el abono (%s) supera el saldo (%s)", domain.ErrInvalidInput, in.Amount, s.Due)
		}
		p := newPaymentRecord(in, uc.now())
		if err := r.Sales.AddPayment(ctx, s.ID, p); err != nil {
			return err
		}
		s.Payments = append(s.Payments, p)
		s.Paid = s.Paid.Add(p.Amount)
		s.Due = s.Due.Sub(p.Amount)
		s.Status = entity.StatusAfterPayment(s.Due)
		s.UpdatedAt = uc.now()
		if err := r.Sales.UpdateState(ctx, s); err != nil {
			return err
		}
		if s.CustomerID != "" {
			if err := r.Customers.AddBalance(ctx, s.CustomerID, p.Amount.Neg()); err != nil {
				return err
			}
		}
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// CancelSale anula la venta: devuelve la mercancía al inventario y descuenta el saldo pendiente del cliente.
func (uc *SaleUseCase) CancelSale(ctx context.Context, companyID, userID, saleID string) (*dto.DocumentResponse, error) {
	return uc.reverse(ctx, companyID, userID, saleID, entity.DocStatusCancelled)
}

// ReturnSale registra la devolución total: reingresa la mercancía y acredita el total al cliente.
func (uc *SaleUseCase) ReturnSale(ctx context.Context, companyID, userID, saleID string) (*dto.DocumentResponse, error) {
	return uc.reverse(ctx, companyID, userID, saleID, entity.DocStatusReturn)
}

func (uc *SaleUseCase) reverse(ctx context.Context, companyID, userID, saleID, target string) (*dto.DocumentResponse, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		s, err := lockSale(ctx, r.Sales, companyID, saleID)
		if err != nil {
			return err
		}
		if !isOpen(s.Status) {
			return fmt.Errorf("%w: la venta %s ya está %s", domain.ErrConflict, s.OrderID, s.Status)
		}
		now := uc.now()
		movType, credit := entity.MovementSaleCancel, s.Due
		if target == entity.DocStatusReturn {
			movType, credit = entity.MovementSaleReturn, s.Total
			s.ReturnedAt = &now
		} else {
			s.CancelledAt = &now
		}
		s.Status = target
		s.UpdatedAt = now
		if err := r.Sales.UpdateState(ctx, s); err != nil {
			return err
		}
		if err := uc.moveStock(ctx, r, s, userID, movType, true); err != nil {
			return err
		}
		if s.CustomerID != "" && !credit.IsZero() {
			if err := r.Customers.AddBalance(ctx, s.CustomerID, credit.Neg()); err != nil {
				return err
			}
		}
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// moveStock descuenta (venta) o reingresa (anulación/devolución) las líneas en orden de artículo.
func (uc *SaleUseCase) moveStock(ctx context.Context, r repository.TxRepos, s *entity.Sale, userID, movType string, restock bool) error {
	changes := make([]inventory.StockChange, 0, len(s.Lines))
	for _, l := range s.Lines {
		c := inventory.StockChange{
			CompanyID: s.CompanyID,
			ItemID:    l.ItemID,
			UserID:    userID,
			Type:      movType,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			Reference: s.OrderID,
			Date:      uc.now(),
		}
		if restock {
			c.CostMode = inventory.CostAverage
		}
		changes = append(changes, c)
	}
	inventory.SortByItem(changes)
	for _, c := range changes {
		var err error
		if restock {
			_, err = inventory.Increase(ctx, r, c)
		} else {
			_, err = inventory.Decrease(ctx, r, c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// GetSale obtiene la venta con líneas y pagos.
func (uc *SaleUseCase) GetSale(ctx context.Context, companyID, saleID string) (*dto.DocumentResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(s), nil
}

// ListSales lista ventas por filtros (fecha, estado, cliente, código).
func (uc *SaleUseCase) ListSales(ctx context.Context, companyID string, in dto.DocumentListRequest) (*dto.DocumentListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.saleRepo.List(ctx, repository.DocumentFilter{
		CompanyID: companyID,
		PartyID:   in.PartyID,
		Status:    in.Status,
		Search:    in.Search,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// DownloadReceiptPDF genera la factura imprimible de la venta.
func (uc *SaleUseCase) DownloadReceiptPDF(ctx context.Context, companyID, saleID string) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if s == nil || s.CompanyID != companyID {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	pdfBytes, err = uc.pdf.GenerateSalePDF(ctx, company, s)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("venta_%s.pdf", s.OrderID), nil
}

func lockSale(ctx context.Context, sales repository.SaleRepository, companyID, saleID string) (*entity.Sale, error) {
	s, err := sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toSaleResponse(s *entity.Sale) *dto.DocumentResponse {
	if s == nil {
		return nil
	}
	name := s.CustomerName
	if s.CustomerID == "" {
		name = "Cliente de mostrador"
	}
	return &dto.DocumentResponse{
		ID:          s.ID,
		Code:        s.OrderID,
		PartyID:     s.CustomerID,
		PartyName:   name,
		Date:        s.Date,
		Lines:       toLineResponses(s.Lines),
		Payments:    toPaymentResponses(s.Payments),
		Subtotal:    s.Subtotal,
		TaxTotal:    s.TaxTotal,
		Discount:    s.Discount,
		Total:       s.Total,
		Paid:        s.Paid,
		Due:         s.Due,
		Status:      s.Status,
		Note:        s.Note,
		CancelledAt: s.CancelledAt,
		ReturnedAt:  s.ReturnedAt,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}
