package repository

import "context"

// SequenceRepository contador de códigos por empresa y prefijo.
type SequenceRepository interface {
	// Lock reserva (y crea si no existe) el contador bloqueándolo hasta el fin de la transacción.
	// seeded=false indica que nunca se ha usado y debe sembrarse desde el último código existente.
	Lock(ctx context.Context, companyID, prefix string) (last int64, seeded bool, err error)
	Save(ctx context.Context, companyID, prefix string, last int64) error
}
