// Package sequence genera los códigos legibles de documentos (SAL-0001, PUR-0001...).
package sequence

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
)

// Prefijos por tipo de documento.
const (
	PrefixSale            = "SAL"
	PrefixPurchase        = "PUR"
	PrefixCustomerPayment = "PAY"
	PrefixSupplierPayment = "SPY"
	PrefixExpense         = "EXP"
)

const padWidth = 4

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Parse extrae el entero final de un código ("SAL-0042" -> 42).
func Parse(code string) (int64, bool) {
	m := trailingDigits.FindStringSubmatch(code)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format arma el código con relleno de ceros; números más anchos no se truncan.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, padWidth, n)
}

// Next calcula el código siguiente a partir del último emitido.
// last vacío -> prefix-0001. Un last sin dígitos finales es un error.
func Next(prefix, last string) (string, error) {
	if last == "" {
		return Format(prefix, 1), nil
	}
	n, ok := Parse(last)
	if !ok {
		return "", fmt.Errorf("%w: código %q sin número final", domain.ErrInvalidInput, last)
	}
	return Format(prefix, n+1), nil
}
