package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	domledger "github.com/jhoicas/PuntoVenta-api/internal/domain/ledger"
)

func TestPrintStatement(t *testing.T) {
	day := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	st := domledger.Build(decimal.NewFromInt(100), []domledger.Entry{
		{Date: day, Kind: domledger.KindSale, Reference: "SAL-0007", Description: "Venta", Debit: decimal.NewFromInt(15000)},
		{Date: day.Add(time.Hour), Kind: domledger.KindPayment, Reference: "PAY-0003", Description: "Abono", Credit: decimal.NewFromInt(600)},
	})

	var buf bytes.Buffer
	require.NoError(t, printStatement(&buf, &dto.StatementResponse{
		PartyType: "customer", PartyName: "Ana", Statement: st,
	}))

	out := buf.String()
	assert.Contains(t, out, "Ana (customer)")
	assert.Contains(t, out, "SAL-0007")
	assert.Contains(t, out, "PAY-0003")
	assert.Contains(t, out, "2026-03-02")
	// saldo final 100 + 15000 - 600
	assert.Contains(t, out, "14.500,00")
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("", false)
	require.NoError(t, err)
	assert.Nil(t, got)

	to, err := parseDateFlag("2026-01-31", true)
	require.NoError(t, err)
	assert.Equal(t, 31, to.Day())
	assert.Equal(t, 23, to.Hour())

	_, err = parseDateFlag("31/01/2026", false)
	assert.Error(t, err)
}
