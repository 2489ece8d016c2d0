package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/promostock-api/internal/application/ports"
	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

// ThresholdUseCase administra los umbrales de alerta por (sucursal, producto).
// Umbral 0 elimina la configuración del par (sin fila no hay alerta).
type ThresholdUseCase struct {
	thresholdRepo repository.AlertThresholdRepository
	audit         ports.AuditSink
	log           *logger.Logger
}

// NewThresholdUseCase construye el caso de uso.
func NewThresholdUseCase(thresholdRepo repository.AlertThresholdRepository, audit ports.AuditSink, log *logger.Logger) *ThresholdUseCase {
	return &ThresholdUseCase{thresholdRepo: thresholdRepo, audit: audit, log: log}
}

// ThresholdInput un umbral a configurar. Threshold 0 borra el del par.
type ThresholdInput struct {
	BranchID  string
	ProductID string
	Threshold int64
}

// Set aplica un lote de umbrales (upsert, o delete si el valor es 0).
func (uc *ThresholdUseCase) Set(ctx context.Context, items []ThresholdInput, actorID string) error {
	for _, it := range items {
		if it.BranchID == "" || it.ProductID == "" || it.Threshold < 0 {
			return domain.ErrInvalidInput
		}
	}
	for _, it := range items {
		if it.Threshold == 0 {
			if err := uc.thresholdRepo.Delete(ctx, it.BranchID, it.ProductID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			continue
		}
		th := &entity.AlertThreshold{
			BranchID:  it.BranchID,
			ProductID: it.ProductID,
			Threshold: it.Threshold,
			UpdatedAt: time.Now(),
		}
		if err := uc.thresholdRepo.Upsert(ctx, th); err != nil {
			return err
		}
	}

	if err := uc.audit.Append(ctx, actorID, "SET", "AlertThreshold", "", fmt.Sprintf("items=%d", len(items))); err != nil {
		uc.log.Warn().Err(err).Msg("append de auditoría falló")
	}
	return nil
}

// List devuelve todos los umbrales configurados.
func (uc *ThresholdUseCase) List(ctx context.Context) ([]*entity.AlertThreshold, error) {
	return uc.thresholdRepo.List(ctx)
}
