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

// PurchaseUseCase compras a proveedores: ingreso de mercancía con costo promedio ponderado
// y cuenta por pagar del proveedor.
type PurchaseUseCase struct {
	txRunner     repository.TxRunner
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner repository.TxRunner, purchaseRepo repository.PurchaseRepository, supplierRepo repository.SupplierRepository) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		now:          time.Now,
	}
}

// CreatePurchase asigna PUR-nnnn, guarda la compra, ingresa existencias recalculando el costo
// promedio y suma el saldo pendiente a la cuenta del proveedor.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreatePurchaseRequest) (*dto.DocumentResponse, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	now := uc.now()
	date := docDate(in.Date, now)
	payments, paid, err := buildPayments(in.Payments, date)
	if err != nil {
		return nil, err
	}

	var purchase *entity.Purchase
	err = uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		items, err := lockItems(ctx, r.Items, companyID, in.Items)
		if err != nil {
			return err
		}
		lines, totals, err := buildLines(in.Items, items,
			func(it *entity.Item) decimal.Decimal { return it.PurchasePrice },
			func(_ *entity.Item, price decimal.Decimal) decimal.Decimal { return price },
			in.Discount)
		if err != nil {
			return err
		}
		if paid.GreaterThan(totals.Total) {
			return fmt.Errorf("%w: el pago (%s) supera el total (%s)", domain.ErrInvalidInput, paid, totals.Total)
		}
		due := totals.Total.Sub(paid)

		code, err := numbering.Next(ctx, r.Sequences, companyID, sequence.PrefixPurchase, func(ctx context.Context) (string, error) {
			return r.Purchases.LastCode(ctx, companyID)
		})
		if err != nil {
			return err
		}

		purchase = &entity.Purchase{
			ID:           uuid.New().String(),
			CompanyID:    companyID,
			PurchaseID:   code,
			SupplierID:   supplier.ID,
			SupplierName: supplier.Name,
			Date:         date,
			Lines:        lines,
			Payments:     payments,
			Subtotal:     totals.Subtotal,
			TaxTotal:     totals.Tax,
			Discount:     totals.Discount,
			Total:        totals.Total,
			Paid:         paid,
			Due:          due,
			Status:       entity.StatusAfterPayment(due),
			Note:         in.Note,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Purchases.Create(ctx, purchase); err != nil {
			return err
		}
		if err := uc.moveStock(ctx, r, purchase, userID, entity.MovementPurchase, true); err != nil {
			return err
		}
		if due.IsPositive() {
			return r.Suppliers.AddBalance(ctx, supplier.ID, due)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// AddPayment registra un pago sobre una compra pendiente.
func (uc *PurchaseUseCase) AddPayment(ctx context.Context, companyID, purchaseID string, in dto.PaymentLineRequest) (*dto.DocumentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	var purchase *entity.Purchase
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		p, err := lockPurchase(ctx, r.Purchases, companyID, purchaseID)
		if err != nil {
			return err
		}
		if p.Status != entity.DocStatusPending {
			return fmt.Errorf("%w: la compra %s está %s", domain.ErrConflict, p.PurchaseID, p.Status)
		}
		if in.Amount.GreaterThan(p.Due) {
			return fmt.Errorf("%w: el pago (%s) supera el saldo (%s)", domain.ErrInvalidInput, in.Amount, p.Due)
		}
		pay := newPaymentRecord(in, uc.now())
		if err := r.Purchases.AddPayment(ctx, p.ID, pay); err != nil {
			return err
		}
		p.Payments = append(p.Payments, pay)
		p.Paid = p.Paid.Add(pay.Amount)
		p.Due = p.Due.Sub(pay.Amount)
		p.Status = entity.StatusAfterPayment(p.Due)
		p.UpdatedAt = uc.now()
		if err := r.Purchases.UpdateState(ctx, p); err != nil {
			return err
		}
		if err := r.Suppliers.AddBalance(ctx, p.SupplierID, pay.Amount.Neg()); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// CancelPurchase anula la compra: retira la mercancía (debe seguir disponible) y descuenta el saldo pendiente.
func (uc *PurchaseUseCase) CancelPurchase(ctx context.Context, companyID, userID, purchaseID string) (*dto.DocumentResponse, error) {
	return uc.reverse(ctx, companyID, userID, purchaseID, entity.DocStatusCancelled)
}

// ReturnPurchase devuelve la mercancía al proveedor y acredita el total en su cuenta.
func (uc *PurchaseUseCase) ReturnPurchase(ctx context.Context, companyID, userID, purchaseID string) (*dto.DocumentResponse, error) {
	return uc.reverse(ctx, companyID, userID, purchaseID, entity.DocStatusReturn)
}

func (uc *PurchaseUseCase) reverse(ctx context.Context, companyID, userID, purchaseID, target string) (*dto.DocumentResponse, error) {
	var purchase *entity.Purchase
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		p, err := lockPurchase(ctx, r.Purchases, companyID, purchaseID)
		if err != nil {
			return err
		}
		if !isOpen(p.Status) {
			return fmt.Errorf("%w: la compra %s ya está %s", domain.ErrConflict, p.PurchaseID, p.Status)
		}
		now := uc.now()
		movType, credit := entity.MovementPurchaseCancel, p.Due
		if target == entity.DocStatusReturn {
			movType, credit = entity.MovementPurchaseReturn, p.Total
			p.ReturnedAt = &now
		} else {
			p.CancelledAt = &now
		}
		p.Status = target
		p.UpdatedAt = now
		if err := r.Purchases.UpdateState(ctx, p); err != nil {
			return err
		}
		if err := uc.moveStock(ctx, r, p, userID, movType, false); err != nil {
			return err
		}
		if !credit.IsZero() {
			if err := r.Suppliers.AddBalance(ctx, p.SupplierID, credit.Neg()); err != nil {
				return err
			}
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// moveStock ingresa (compra) o retira (anulación/devolución) existencias ajustando el costo promedio.
func (uc *PurchaseUseCase) moveStock(ctx context.Context, r repository.TxRepos, p *entity.Purchase, userID, movType string, incoming bool) error {
	changes := make([]inventory.StockChange, 0, len(p.Lines))
	for _, l := range p.Lines {
		c := inventory.StockChange{
			CompanyID: p.CompanyID,
			ItemID:    l.ItemID,
			UserID:    userID,
			Type:      movType,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			CostMode:  inventory.CostReverse,
			Reference: p.PurchaseID,
			Date:      uc.now(),
		}
		if incoming {
			c.CostMode = inventory.CostAverage
		}
		changes = append(changes, c)
	}
	inventory.SortByItem(changes)
	for _, c := range changes {
		var err error
		if incoming {
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

// GetPurchase obtiene la compra con líneas y pagos.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, companyID, purchaseID string) (*dto.DocumentResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// ListPurchases lista compras por filtros.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, companyID string, in dto.DocumentListRequest) (*dto.DocumentListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.purchaseRepo.List(ctx, repository.DocumentFilter{
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
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func lockPurchase(ctx context.Context, purchases repository.PurchaseRepository, companyID, purchaseID string) (*entity.Purchase, error) {
	p, err := purchases.GetForUpdate(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.DocumentResponse {
	if p == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:          p.ID,
		Code:        p.PurchaseID,
		PartyID:     p.SupplierID,
		PartyName:   p.SupplierName,
		Date:        p.Date,
		Lines:       toLineResponses(p.Lines),
		Payments:    toPaymentResponses(p.Payments),
		Subtotal:    p.Subtotal,
		TaxTotal:    p.TaxTotal,
		Discount:    p.Discount,
		Total:       p.Total,
		Paid:        p.Paid,
		Due:         p.Due,
		Status:      p.Status,
		Note:        p.Note,
		CancelledAt: p.CancelledAt,
		ReturnedAt:  p.ReturnedAt,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}
