package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/numbering"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
	"github.com/shopspring/decimal"
)

// PaymentUseCase abonos de clientes (PAY-nnnn) y pagos a proveedores (SPY-nnnn) no ligados a un documento.
type PaymentUseCase struct {
	txRunner     repository.TxRunner
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(
	txRunner repository.TxRunner,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:     txRunner,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		now:          time.Now,
	}
}

// RecordCustomerPayment registra un abono y reduce el saldo por cobrar del cliente.
func (uc *PaymentUseCase) RecordCustomerPayment(ctx context.Context, companyID, userID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	return uc.record(ctx, companyID, userID, entity.PartyCustomer, in)
}

// RecordSupplierPayment registra un pago y reduce el saldo por pagar al proveedor.
func (uc *PaymentUseCase) RecordSupplierPayment(ctx context.Context, companyID, userID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	return uc.record(ctx, companyID, userID, entity.PartySupplier, in)
}

func (uc *PaymentUseCase) record(ctx context.Context, companyID, userID, partyType string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if err := uc.ensureParty(ctx, companyID, partyType, in.PartyID); err != nil {
		return nil, err
	}
	now := uc.now()
	prefix := sequence.PrefixCustomerPayment
	if partyType == entity.PartySupplier {
		prefix = sequence.PrefixSupplierPayment
	}
	method := in.Method
	if method == "" {
		method = "cash"
	}

	var payment *entity.Payment
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		code, err := numbering.Next(ctx, r.Sequences, companyID, prefix, func(ctx context.Context) (string, error) {
			return r.Payments.LastCode(ctx, companyID, prefix)
		})
		if err != nil {
			return err
		}
		payment = &entity.Payment{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			Code:      code,
			PartyType: partyType,
			PartyID:   in.PartyID,
			Amount:    in.Amount,
			Method:    method,
			Note:      in.Note,
			Date:      docDate(in.Date, now),
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		return addPartyBalance(ctx, r, partyType, in.PartyID, in.Amount.Neg())
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListByParty lista los pagos de un cliente o proveedor (más antiguo primero).
func (uc *PaymentUseCase) ListByParty(ctx context.Context, companyID, partyType, partyID string) ([]dto.PaymentResponse, error) {
	if err := uc.ensureParty(ctx, companyID, partyType, partyID); err != nil {
		return nil, err
	}
	list, err := uc.paymentRepo.ListByParty(ctx, partyType, partyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// DeletePayment elimina el pago y revierte su efecto en el saldo.
func (uc *PaymentUseCase) DeletePayment(ctx context.Context, companyID, paymentID string) error {
	return uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p == nil || p.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if err := r.Payments.Delete(ctx, p.ID); err != nil {
			return err
		}
		return addPartyBalance(ctx, r, p.PartyType, p.PartyID, p.Amount)
	})
}

func (uc *PaymentUseCase) ensureParty(ctx context.Context, companyID, partyType, partyID string) error {
	var owner string
	switch partyType {
	case entity.PartyCustomer:
		c, err := uc.customerRepo.GetByID(ctx, partyID)
		if err != nil {
			return err
		}
		if c != nil {
			owner = c.CompanyID
		}
	case entity.PartySupplier:
		s, err := uc.supplierRepo.GetByID(ctx, partyID)
		if err != nil {
			return err
		}
		if s != nil {
			owner = s.CompanyID
		}
	default:
		return domain.ErrInvalidInput
	}
	if owner == "" || owner != companyID {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, partyType, partyID)
	}
	return nil
}

func addPartyBalance(ctx context.Context, r repository.TxRepos, partyType, partyID string, delta decimal.Decimal) error {
	if partyType == entity.PartySupplier {
		return r.Suppliers.AddBalance(ctx, partyID, delta)
	}
	return r.Customers.AddBalance(ctx, partyID, delta)
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	return &dto.PaymentResponse{
		ID:        p.ID,
		Code:      p.Code,
		PartyType: p.PartyType,
		PartyID:   p.PartyID,
		Amount:    p.Amount,
		Method:    p.Method,
		Note:      p.Note,
		Date:      p.Date,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
}
