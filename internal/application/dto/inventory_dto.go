package dto

import (
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// InventoryRowResponse una celda del agregado con el remaining calculado.
// El remaining no se recorta: puede ser negativo (sobre-despacho permitido).
type InventoryRowResponse struct {
	BranchID     string    `json:"branch_id"`
	ProductID    string    `json:"product_id"`
	TotalOrdered int64     `json:"total_ordered"`
	TotalShipped int64     `json:"total_shipped"`
	Remaining    int64     `json:"remaining"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromInventoryAggregate arma la fila de respuesta desde la entidad.
func FromInventoryAggregate(a *entity.InventoryAggregate) InventoryRowResponse {
	return InventoryRowResponse{
		BranchID:     a.BranchID,
		ProductID:    a.ProductID,
		TotalOrdered: a.TotalOrdered,
		TotalShipped: a.TotalShipped,
		Remaining:    a.Remaining(),
		UpdatedAt:    a.UpdatedAt,
	}
}

// ThresholdItemRequest un umbral a configurar; 0 borra el del par.
type ThresholdItemRequest struct {
	BranchID  string `json:"branch_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Threshold int64  `json:"threshold" validate:"min=0"`
}

// SetThresholdsRequest lote de umbrales a aplicar.
type SetThresholdsRequest struct {
	Items []ThresholdItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ThresholdResponse un umbral configurado.
type ThresholdResponse struct {
	BranchID  string `json:"branch_id"`
	ProductID string `json:"product_id"`
	Threshold int64  `json:"threshold"`
}

// FromThreshold arma la respuesta desde la entidad.
func FromThreshold(t *entity.AlertThreshold) ThresholdResponse {
	return ThresholdResponse{BranchID: t.BranchID, ProductID: t.ProductID, Threshold: t.Threshold}
}
