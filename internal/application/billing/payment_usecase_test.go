package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCustomerPayment(t *testing.T) {
	f := newFixture(t)
	f.addCustomer(t, "c1", "100")
	ctx := context.Background()

	first, err := f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("40")})
	require.NoError(t, err)
	assert.Equal(t, "PAY-0001", first.Code)
	assert.Equal(t, "cash", first.Method)
	assertDec(t, "60", f.customerBalance(t, "c1"))

	second, err := f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("10"), Method: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, "PAY-0002", second.Code)

	list, err := f.payments.ListByParty(ctx, testCompany, entity.PartyCustomer, "c1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRecordSupplierPayment_SecuenciaPropia(t *testing.T) {
	f := newFixture(t)
	f.addCustomer(t, "c1", "100")
	f.addSupplier(t, "s1")
	ctx := context.Background()

	_, err := f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("1")})
	require.NoError(t, err)
	out, err := f.payments.RecordSupplierPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "s1", Amount: dec("25")})
	require.NoError(t, err)
	assert.Equal(t, "SPY-0001", out.Code)
	assertDec(t, "-25", f.supplierBalance(t, "s1"))
}

func TestRecordPayment_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.addCustomer(t, "c1", "100")
	ctx := context.Background()

	_, err := f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("0")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "nadie", Amount: dec("5")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.payments.RecordCustomerPayment(ctx, "otra-empresa", testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("5")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assertDec(t, "100", f.customerBalance(t, "c1"))
}

func TestDeletePayment_RevierteSaldo(t *testing.T) {
	f := newFixture(t)
	f.addCustomer(t, "c1", "100")
	ctx := context.Background()

	p, err := f.payments.RecordCustomerPayment(ctx, testCompany, testUser, dto.RecordPaymentRequest{PartyID: "c1", Amount: dec("40")})
	require.NoError(t, err)

	require.NoError(t, f.payments.DeletePayment(ctx, testCompany, p.ID))
	assertDec(t, "100", f.customerBalance(t, "c1"))

	err = f.payments.DeletePayment(ctx, testCompany, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
