package stock

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que escritura de ledger y upsert del
// agregado commiteen juntos o no commiteen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		extraOrderRepo repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}
