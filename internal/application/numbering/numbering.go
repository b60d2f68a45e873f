// Package numbering reserva el siguiente código de documento dentro de una transacción.
package numbering

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
)

// LastCodeFunc devuelve el último código emitido para sembrar el contador ("" si no hay).
type LastCodeFunc func(ctx context.Context) (string, error)

// Next bloquea el contador de la empresa para el prefijo y devuelve el código siguiente.
// La primera vez que se usa un prefijo el contador se siembra con el último código existente.
func Next(ctx context.Context, seqs repository.SequenceRepository, companyID, prefix string, lastCode LastCodeFunc) (string, error) {
	last, seeded, err := seqs.Lock(ctx, companyID, prefix)
	if err != nil {
		return "", fmt.Errorf("bloquear secuencia %s: %w", prefix, err)
	}
	next := last + 1
	code := sequence.Format(prefix, next)
	if !seeded {
		prev, err := lastCode(ctx)
		if err != nil {
			return "", err
		}
		seededCode, err := sequence.Next(prefix, prev)
		if err != nil {
			return "", fmt.Errorf("sembrar secuencia %s: %w", prefix, err)
		}
		if n, _ := sequence.Parse(seededCode); n > next {
			next, code = n, seededCode
		}
	}
	if err := seqs.Save(ctx, companyID, prefix, next); err != nil {
		return "", fmt.Errorf("guardar secuencia %s: %w", prefix, err)
	}
	return code, nil
}
