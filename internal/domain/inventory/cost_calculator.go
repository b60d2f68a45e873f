// Package inventory agrupa las reglas de dominio sobre existencias y costos.
package inventory

import "github.com/shopspring/decimal"

// costScale decimales que se conservan en el costo promedio.
const costScale = 4

// WeightedCost calcula el costo promedio ponderado tras una entrada de mercancía:
// ((stock * costo) + (entrada * costoEntrada)) / (stock + entrada).
// Con existencia previa no positiva el costo resultante es el de la entrada.
func WeightedCost(stock, cost, inQty, inCost decimal.Decimal) decimal.Decimal {
	if !stock.IsPositive() {
		if inQty.IsPositive() {
			return inCost
		}
		return cost
	}
	total := stock.Add(inQty)
	if !total.IsPositive() {
		return cost
	}
	return stock.Mul(cost).Add(inQty.Mul(inCost)).DivRound(total, costScale)
}

// ReverseWeightedCost deshace una entrada (anulación o devolución de compra) sobre el costo promedio.
// Si la salida deja el artículo sin existencias se conserva el costo vigente.
func ReverseWeightedCost(stock, cost, outQty, outCost decimal.Decimal) decimal.Decimal {
	remaining := stock.Sub(outQty)
	if !remaining.IsPositive() {
		return cost
	}
	value := stock.Mul(cost).Sub(outQty.Mul(outCost))
	if value.IsNegative() {
		return cost
	}
	return value.DivRound(remaining, costScale)
}
