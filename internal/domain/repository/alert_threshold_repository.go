package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// AlertThresholdRepository puerto sobre los umbrales de alerta por par.
// Get devuelve domain.ErrNotFound si el par no tiene umbral configurado.
type AlertThresholdRepository interface {
	Get(ctx context.Context, branchID, productID string) (*entity.AlertThreshold, error)
	Upsert(ctx context.Context, threshold *entity.AlertThreshold) error
	Delete(ctx context.Context, branchID, productID string) error
	List(ctx context.Context) ([]*entity.AlertThreshold, error)
}
