package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

// Monitor compara el agregado recién recalculado de un par contra su umbral
// configurado y dispara alertas de stock bajo. Se invoca después de cualquier
// operación que cambie totalShipped, siempre tras el recompute. No hay ventana
// de supresión: cada despacho que califique vuelve a notificar.
type Monitor struct {
	thresholdRepo repository.AlertThresholdRepository
	inventoryRepo repository.InventoryRepository
	branchRepo    repository.BranchRepository
	productRepo   repository.ProductRepository
	notifier      *Notifier
	log           *logger.Logger
}

// NewMonitor construye el monitor de umbrales.
func NewMonitor(
	thresholdRepo repository.AlertThresholdRepository,
	inventoryRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	notifier *Notifier,
	log *logger.Logger,
) *Monitor {
	return &Monitor{
		thresholdRepo: thresholdRepo,
		inventoryRepo: inventoryRepo,
		branchRepo:    branchRepo,
		productRepo:   productRepo,
		notifier:      notifier,
		log:           log,
	}
}

// Check evalúa el par: sin umbral configurado es un no-op; con
// remaining <= umbral notifica a los revisores centrales y a la sucursal.
// Best-effort: los errores se loguean y no se propagan.
func (m *Monitor) Check(ctx context.Context, branchID, productID string) {
	th, err := m.thresholdRepo.Get(ctx, branchID, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.Warn().Err(err).Str("branch_id", branchID).Str("product_id", productID).Msg("lectura de umbral falló")
		}
		return
	}

	agg, err := m.inventoryRepo.Get(ctx, branchID, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.Warn().Err(err).Str("branch_id", branchID).Str("product_id", productID).Msg("lectura de agregado falló")
		}
		return
	}

	remaining := agg.Remaining()
	if remaining > th.Threshold {
		return
	}

	branchName, productName := branchID, productID
	if b, err := m.branchRepo.GetByID(ctx, branchID); err == nil {
		branchName = b.Name
	}
	if p, err := m.productRepo.GetByID(ctx, productID); err == nil {
		productName = p.Name
	}

	title := "Alerta de stock bajo"
	message := fmt.Sprintf("%s - %s restante: %d (umbral: %d)", branchName, productName, remaining, th.Threshold)
	m.notifier.NotifyAdminsAndHQ(ctx, entity.NotificationTypeLOWSTOCK, title, message)
	m.notifier.NotifyBranchUsers(ctx, branchID, entity.NotificationTypeLOWSTOCK, title, message)
}
