// Package ledger reconstruye el estado de cuenta de un cliente o proveedor.
// El saldo nunca se persiste: se recalcula en cada lectura a partir de los documentos.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del estado de cuenta.
const (
	KindOpening    = "opening"
	KindSale       = "sale"
	KindPurchase   = "purchase"
	KindPayment    = "payment"
	KindReturn     = "return"
	KindAdjustment = "adjustment"
)

// Entry una fila del estado de cuenta. Balance se completa en Build.
type Entry struct {
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// Statement resultado del plegado.
type Statement struct {
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Entries        []Entry         `json:"entries"`
	TotalDebit     decimal.Decimal `json:"total_debit"`
	TotalCredit    decimal.Decimal `json:"total_credit"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// Build ordena las filas por fecha (estable: a igual fecha se respeta el orden de entrada)
// y acumula balance += debe - haber partiendo del saldo inicial.
func Build(opening decimal.Decimal, entries []Entry) Statement {
	rows := make([]Entry, len(entries))
	copy(rows, entries)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	st := Statement{
		OpeningBalance: opening,
		Entries:        rows,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	balance := opening
	for i := range rows {
		balance = balance.Add(rows[i].Debit).Sub(rows[i].Credit)
		rows[i].Balance = balance
		st.TotalDebit = st.TotalDebit.Add(rows[i].Debit)
		st.TotalCredit = st.TotalCredit.Add(rows[i].Credit)
	}
	st.ClosingBalance = balance
	return st
}

// Window construye el estado de cuenta de un periodo. Las filas anteriores a from se
// acumulan en el saldo inicial (saldo anterior) y las posteriores a to se descartan.
// from/to nil = sin límite.
func Window(opening decimal.Decimal, entries []Entry, from, to *time.Time) Statement {
	brought := opening
	inRange := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if from != nil && e.Date.Before(*from) {
			brought = brought.Add(e.Debit).Sub(e.Credit)
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		inRange = append(inRange, e)
	}
	return Build(brought, inRange)
}
