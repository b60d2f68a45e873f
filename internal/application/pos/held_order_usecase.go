// Package pos agrupa los flujos propios del punto de venta (carritos en espera).
package pos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

const (
	// DefaultHeldOrderTTL vigencia de un carrito en espera.
	DefaultHeldOrderTTL = 24 * time.Hour
	checkoutLockTTL     = 30 * time.Second
)

// HeldOrderUseCase carritos en espera: guardar, listar, descartar y cobrar.
type HeldOrderUseCase struct {
	store  HeldOrderStore
	locker Locker
	sales  SaleCreator
	ttl    time.Duration
	now    func() time.Time
}

// NewHeldOrderUseCase construye el caso de uso. ttl <= 0 usa DefaultHeldOrderTTL.
func NewHeldOrderUseCase(store HeldOrderStore, locker Locker, sales SaleCreator, ttl time.Duration) *HeldOrderUseCase {
	if ttl <= 0 {
		ttl = DefaultHeldOrderTTL
	}
	return &HeldOrderUseCase{store: store, locker: locker, sales: sales, ttl: ttl, now: time.Now}
}

// Hold guarda el carrito. No reserva existencias: se validan al cobrar.
func (uc *HeldOrderUseCase) Hold(ctx context.Context, companyID, userID string, in dto.HoldOrderRequest) (*dto.HeldOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	lines := make([]entity.HeldOrderLine, 0, len(in.Items))
	for _, l := range in.Items {
		if l.ItemID == "" || !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
		lines = append(lines, entity.HeldOrderLine{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: descuento fuera de rango", domain.ErrInvalidInput)
	}
	now := uc.now()
	order := &entity.HeldOrder{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CreatedBy:  userID,
		CustomerID: in.CustomerID,
		Note:       in.Note,
		Lines:      lines,
		Discount:   in.Discount,
		HeldAt:     now,
		ExpiresAt:  now.Add(uc.ttl),
	}
	if err := uc.store.Save(ctx, order, uc.ttl); err != nil {
		return nil, err
	}
	return toHeldOrderResponse(order), nil
}

// List carritos vigentes de la empresa (más antiguo primero).
func (uc *HeldOrderUseCase) List(ctx context.Context, companyID string) ([]dto.HeldOrderResponse, error) {
	list, err := uc.store.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HeldOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toHeldOrderResponse(o))
	}
	return out, nil
}

// Get obtiene un carrito vigente.
func (uc *HeldOrderUseCase) Get(ctx context.Context, companyID, id string) (*dto.HeldOrderResponse, error) {
	o, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toHeldOrderResponse(o), nil
}

// Discard elimina el carrito sin vender.
func (uc *HeldOrderUseCase) Discard(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.store.Delete(ctx, companyID, id)
}

// Checkout cobra el carrito: toma un candado sobre el carrito (dos cajas no pueden cobrarlo a la vez),
// crea la venta con las reglas normales y elimina el carrito. Si la venta falla el carrito se conserva.
func (uc *HeldOrderUseCase) Checkout(ctx context.Context, companyID, userID, id string, in dto.CheckoutHeldOrderRequest) (*dto.DocumentResponse, error) {
	release, err := uc.locker.Obtain(ctx, lockKey(companyID, id), checkoutLockTTL)
	if err != nil {
		if errors.Is(err, domain.ErrLocked) {
			return nil, fmt.Errorf("%w: el carrito se está cobrando en otra caja", domain.ErrConflict)
		}
		return nil, err
	}
	defer func() { _ = release(context.WithoutCancel(ctx)) }()

	order, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	req := dto.CreateSaleRequest{
		CustomerID: order.CustomerID,
		Items:      make([]dto.DocumentLineRequest, 0, len(order.Lines)),
		Discount:   order.Discount,
		Payments:   in.Payments,
		Status:     in.Status,
		Note:       order.Note,
	}
	for _, l := range order.Lines {
		req.Items = append(req.Items, dto.DocumentLineRequest{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	sale, err := uc.sales.CreateSale(ctx, companyID, userID, req)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Delete(ctx, companyID, id); err != nil {
		return nil, fmt.Errorf("venta %s creada pero no se pudo eliminar el carrito: %w", sale.Code, err)
	}
	return sale, nil
}

func (uc *HeldOrderUseCase) get(ctx context.Context, companyID, id string) (*entity.HeldOrder, error) {
	o, err := uc.store.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func lockKey(companyID, id string) string {
	return "lock:held:" + companyID + ":" + id
}

func toHeldOrderResponse(o *entity.HeldOrder) *dto.HeldOrderResponse {
	items := make([]dto.DocumentLineRequest, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, dto.DocumentLineRequest{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return &dto.HeldOrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Note:       o.Note,
		Items:      items,
		Discount:   o.Discount,
		CreatedBy:  o.CreatedBy,
		HeldAt:     o.HeldAt,
		ExpiresAt:  o.ExpiresAt,
	}
}
