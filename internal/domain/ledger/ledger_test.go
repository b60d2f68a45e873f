package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(n int) time.Time { return time.Date(2024, 3, n, 10, 0, 0, 0, time.UTC) }

func TestBuild_OrdenaYAcumula(t *testing.T) {
	entries := []Entry{
		{Date: day(5), Kind: KindPayment, Reference: "PAY-0001", Credit: d("40")},
		{Date: day(1), Kind: KindSale, Reference: "SAL-0001", Debit: d("100")},
		{Date: day(3), Kind: KindSale, Reference: "SAL-0002", Debit: d("25.50")},
	}

	st := Build(d("10"), entries)

	require.Len(t, st.Entries, 3)
	assert.Equal(t, "SAL-0001", st.Entries[0].Reference)
	assert.True(t, st.Entries[0].Balance.Equal(d("110")))
	assert.True(t, st.Entries[1].Balance.Equal(d("135.50")))
	assert.True(t, st.Entries[2].Balance.Equal(d("95.50")))
	assert.True(t, st.TotalDebit.Equal(d("125.50")))
	assert.True(t, st.TotalCredit.Equal(d("40")))
	assert.True(t, st.ClosingBalance.Equal(d("95.50")))
}

func TestBuild_Propiedades(t *testing.T) {
	entries := []Entry{
		{Date: day(2), Debit: d("300")},
		{Date: day(2), Credit: d("120")},
		{Date: day(9), Credit: d("15.25")},
		{Date: day(4), Debit: d("7.75")},
		{Date: day(1), Kind: KindReturn, Credit: d("50")},
	}
	opening := d("-20")

	st := Build(opening, entries)

	sumDebit, sumCredit := decimal.Zero, decimal.Zero
	for _, e := range entries {
		sumDebit = sumDebit.Add(e.Debit)
		sumCredit = sumCredit.Add(e.Credit)
	}
	assert.True(t, st.ClosingBalance.Equal(opening.Add(sumDebit).Sub(sumCredit)))

	prev := opening
	for i, row := range st.Entries {
		assert.True(t, row.Balance.Equal(prev.Add(row.Debit).Sub(row.Credit)), "fila %d", i)
		if i > 0 {
			assert.False(t, row.Date.Before(st.Entries[i-1].Date))
		}
		prev = row.Balance
	}
}

func TestBuild_EstableEnMismaFecha(t *testing.T) {
	entries := []Entry{
		{Date: day(1), Reference: "A", Debit: d("10")},
		{Date: day(1), Reference: "B", Credit: d("10")},
	}
	st := Build(decimal.Zero, entries)
	assert.Equal(t, "A", st.Entries[0].Reference)
	assert.Equal(t, "B", st.Entries[1].Reference)
}

func TestBuild_SinMovimientos(t *testing.T) {
	st := Build(d("42"), nil)
	assert.Empty(t, st.Entries)
	assert.True(t, st.ClosingBalance.Equal(d("42")))
}

func TestWindow(t *testing.T) {
	entries := []Entry{
		{Date: day(1), Debit: d("100")},
		{Date: day(2), Credit: d("30")},
		{Date: day(5), Debit: d("20")},
		{Date: day(20), Debit: d("999")},
	}
	from, to := day(3), day(10)

	st := Window(d("5"), entries, &from, &to)

	assert.True(t, st.OpeningBalance.Equal(d("75")))
	require.Len(t, st.Entries, 1)
	assert.True(t, st.ClosingBalance.Equal(d("95")))
}

func TestWindow_SinLimites(t *testing.T) {
	entries := []Entry{{Date: day(1), Debit: d("1")}, {Date: day(2), Debit: d("2")}}
	assert.Equal(t, Build(decimal.Zero, entries), Window(decimal.Zero, entries, nil, nil))
}
