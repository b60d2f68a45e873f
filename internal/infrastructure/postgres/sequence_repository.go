package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por empresa y prefijo en document_sequences.
type SequenceRepo struct {
	q Querier
}

func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Lock crea la fila si no existe y la bloquea con FOR UPDATE; dos transacciones
// concurrentes sobre el mismo prefijo quedan serializadas aquí.
func (r *SequenceRepo) Lock(ctx context.Context, companyID, prefix string) (int64, bool, error) {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO document_sequences (company_id, prefix) VALUES ($1, $2)
		ON CONFLICT (company_id, prefix) DO NOTHING`, companyID, prefix); err != nil {
		return 0, false, fmt.Errorf("ensure sequence: %w", err)
	}
	var (
		last   int64
		seeded bool
	)
	err := r.q.QueryRow(ctx, `
		SELECT last_value, seeded FROM document_sequences
		WHERE company_id = $1 AND prefix = $2 FOR UPDATE`, companyID, prefix).Scan(&last, &seeded)
	if err != nil {
		return 0, false, fmt.Errorf("lock sequence: %w", err)
	}
	return last, seeded, nil
}

func (r *SequenceRepo) Save(ctx context.Context, companyID, prefix string, last int64) error {
	_, err := r.q.Exec(ctx, `
		UPDATE document_sequences SET last_value = $3, seeded = true
		WHERE company_id = $1 AND prefix = $2`, companyID, prefix, last)
	if err != nil {
		return fmt.Errorf("save sequence: %w", err)
	}
	return nil
}
