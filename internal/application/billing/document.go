package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const moneyScale = 2

var hundred = decimal.NewFromInt(100)

// docTotals totales calculados de un documento.
type docTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// lockItems bloquea (en orden de ID) cada artículo distinto referenciado por las líneas.
// Un artículo inexistente o de otra empresa aborta la transacción con ErrNotFound.
func lockItems(ctx context.Context, items repository.ItemRepository, companyID string, lines []dto.DocumentLineRequest) (map[string]*entity.Item, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	sort.Strings(ids)

	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil || item.CompanyID != companyID {
			return nil, fmt.Errorf("%w: artículo %s", domain.ErrNotFound, id)
		}
		out[id] = item
	}
	return out, nil
}

// checkAvailability valida que cada artículo tenga existencia para la suma de sus líneas.
func checkAvailability(lines []dto.DocumentLineRequest, items map[string]*entity.Item) error {
	required := make(map[string]decimal.Decimal, len(items))
	order := make([]string, 0, len(items))
	for _, l := range lines {
		if _, ok := required[l.ItemID]; !ok {
			order = append(order, l.ItemID)
		}
		required[l.ItemID] = required[l.ItemID].Add(l.Quantity)
	}
	for _, id := range order {
		item := items[id]
		if item.Quantity.LessThan(required[id]) {
			return fmt.Errorf("%w: %s (disponible %s, solicitado %s)",
				domain.ErrInsufficientStock, item.Name, item.Quantity.String(), required[id].String())
		}
	}
	return nil
}

// validateLines valida cantidades y precios de entrada (antes de abrir la transacción).
func validateLines(lines []dto.DocumentLineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: el documento no tiene líneas", domain.ErrInvalidInput)
	}
	for _, l := range lines {
		if l.ItemID == "" || !l.Quantity.IsPositive() {
			return fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: precio inválido", domain.ErrInvalidInput)
		}
	}
	return nil
}

// buildLines arma las líneas con precio (explícito o por defecto) e impuesto del artículo.
// costOf devuelve el costo congelado en la línea.
func buildLines(
	lines []dto.DocumentLineRequest,
	items map[string]*entity.Item,
	defaultPrice func(*entity.Item) decimal.Decimal,
	costOf func(item *entity.Item, price decimal.Decimal) decimal.Decimal,
	discount decimal.Decimal,
) ([]entity.LineItem, docTotals, error) {
	totals := docTotals{Subtotal: decimal.Zero, Tax: decimal.Zero, Discount: discount}
	out := make([]entity.LineItem, 0, len(lines))
	for _, l := range lines {
		item := items[l.ItemID]
		price := defaultPrice(item)
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		subtotal := l.Quantity.Mul(price).Round(moneyScale)
		tax := subtotal.Mul(item.TaxRate).Div(hundred).Round(moneyScale)
		out = append(out, entity.LineItem{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  l.Quantity,
			UnitPrice: price,
			UnitCost:  costOf(item, price),
			TaxRate:   item.TaxRate,
			Subtotal:  subtotal,
			TaxAmount: tax,
		})
		totals.Subtotal = totals.Subtotal.Add(subtotal)
		totals.Tax = totals.Tax.Add(tax)
	}
	gross := totals.Subtotal.Add(totals.Tax)
	if discount.IsNegative() || discount.GreaterThan(gross) {
		return nil, docTotals{}, fmt.Errorf("%w: descuento fuera de rango", domain.ErrInvalidInput)
	}
	totals.Total = gross.Sub(discount)
	return out, totals, nil
}

// buildPayments convierte los pagos de entrada; sin fecha se usa la del documento.
func buildPayments(in []dto.PaymentLineRequest, docDate time.Time) ([]entity.PaymentRecord, decimal.Decimal, error) {
	out := make([]entity.PaymentRecord, 0, len(in))
	for _, p := range in {
		if !p.Amount.IsPositive() {
			return nil, decimal.Zero, fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
		}
		out = append(out, newPaymentRecord(p, docDate))
	}
	return out, entity.SumPayments(out), nil
}

func newPaymentRecord(p dto.PaymentLineRequest, def time.Time) entity.PaymentRecord {
	date := def
	if p.Date != nil {
		date = *p.Date
	}
	method := p.Method
	if method == "" {
		method = "cash"
	}
	return entity.PaymentRecord{
		ID:        uuid.New().String(),
		Amount:    p.Amount,
		Method:    method,
		Reference: p.Reference,
		Date:      date,
	}
}

// resolveStatus deriva el estado del saldo pendiente. Fulfilled explícito exige saldo cero;
// Pending explícito se respeta solo si queda saldo.
func resolveStatus(requested string, due decimal.Decimal) (string, error) {
	status := entity.StatusAfterPayment(due)
	if requested == entity.DocStatusFulfilled && status != entity.DocStatusFulfilled {
		return "", fmt.Errorf("%w: una venta completada no puede tener saldo pendiente", domain.ErrInvalidInput)
	}
	return status, nil
}

// isOpen indica si el documento admite pagos, anulación o devolución.
func isOpen(status string) bool {
	return status == entity.DocStatusFulfilled || status == entity.DocStatusPending
}

func docDate(in *time.Time, now time.Time) time.Time {
	if in != nil && !in.IsZero() {
		return *in
	}
	return now
}

func toLineResponses(lines []entity.LineItem) []dto.DocumentLineResponse {
	out := make([]dto.DocumentLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.DocumentLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
			Subtotal:  l.Subtotal,
			TaxAmount: l.TaxAmount,
		})
	}
	return out
}

func toPaymentResponses(payments []entity.PaymentRecord) []dto.PaymentLineResponse {
	out := make([]dto.PaymentLineResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.PaymentLineResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			Date:      p.Date,
		})
	}
	return out
}
