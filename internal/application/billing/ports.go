package billing

import (
	"context"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// ReceiptPDFGenerator genera la factura imprimible de una venta.
// La implementación vive en infrastructure/pdf (maroto).
type ReceiptPDFGenerator interface {
	GenerateSalePDF(ctx context.Context, company *entity.Company, sale *entity.Sale) ([]byte, error)
}
