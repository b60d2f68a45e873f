package sequence

import (
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		last   string
		want   string
	}{
		{"sin registros", PrefixSale, "", "SAL-0001"},
		{"incrementa", PrefixSale, "SAL-0042", "SAL-0043"},
		{"compras", PrefixPurchase, "", "PUR-0001"},
		{"acarreo de ancho", PrefixSale, "SAL-0999", "SAL-1000"},
		{"no trunca", PrefixSale, "SAL-9999", "SAL-10000"},
		{"prefijo distinto al anterior", PrefixExpense, "OLD-0007", "EXP-0008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.prefix, tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_SinDigitos(t *testing.T) {
	_, err := Next(PrefixSale, "SAL-")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestParse(t *testing.T) {
	n, ok := Parse("PAY-0120")
	assert.True(t, ok)
	assert.Equal(t, int64(120), n)

	_, ok = Parse("sin-numero")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "SPY-0005", Format(PrefixSupplierPayment, 5))
	assert.Equal(t, "SAL-12345", Format(PrefixSale, 12345))
}
