// Package money formatea importes para PDFs y salida de consola.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency moneda cuando la empresa no tiene una configurada.
const DefaultCurrency = "COP"

var printer = message.NewPrinter(language.Spanish)

// Format devuelve el importe con separadores de miles en español, dos decimales
// y el símbolo de la moneda: "$ 1.234.567,50". Código inválido → DefaultCurrency.
func Format(amount decimal.Decimal, code string) string {
	f, _ := amount.Round(2).Float64()
	return symbol(code) + " " + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// Plain igual que Format pero sin símbolo (columnas de tablas).
func Plain(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.Scale(2)))
}

func symbol(code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		unit = currency.MustParseISO(DefaultCurrency)
	}
	return printer.Sprint(currency.NarrowSymbol(unit))
}
