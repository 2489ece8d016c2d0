package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/promostock-api/internal/application/ports"
	"github.com/jhoicas/promostock-api/internal/application/stock"
	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

// RoundUseCase administra los rounds de asignación. Toda mutación reemplaza el
// set de items completo y recalcula el agregado entero dentro de la misma
// transacción que la escritura del ledger.
type RoundUseCase struct {
	txRunner  stock.TxRunner
	roundRepo repository.RoundRepository
	recalc    *stock.RecalcUseCase
	audit     ports.AuditSink
	log       *logger.Logger
}

// NewRoundUseCase construye el caso de uso.
func NewRoundUseCase(
	txRunner stock.TxRunner,
	roundRepo repository.RoundRepository,
	recalc *stock.RecalcUseCase,
	audit ports.AuditSink,
	log *logger.Logger,
) *RoundUseCase {
	return &RoundUseCase{txRunner: txRunner, roundRepo: roundRepo, recalc: recalc, audit: audit, log: log}
}

// RoundItemInput un item de asignación dentro del round.
type RoundItemInput struct {
	BranchID  string
	ProductID string
	Quantity  int64
}

// RoundInput entrada para crear o reemplazar un round.
type RoundInput struct {
	RoundNo   int
	OrderDate time.Time
	Memo      string
	Items     []RoundItemInput
}

func validateRoundInput(input RoundInput) error {
	if input.RoundNo <= 0 || input.OrderDate.IsZero() {
		return domain.ErrInvalidInput
	}
	seen := make(map[repository.Pair]struct{}, len(input.Items))
	for _, it := range input.Items {
		if it.BranchID == "" || it.ProductID == "" || it.Quantity < 0 {
			return domain.ErrInvalidInput
		}
		pair := repository.Pair{BranchID: it.BranchID, ProductID: it.ProductID}
		if _, dup := seen[pair]; dup {
			return domain.ErrDuplicate
		}
		seen[pair] = struct{}{}
	}
	return nil
}

// buildItems descarta los items en cero: una asignación de cero unidades no
// aporta al ledger (comportamiento heredado del alta masiva por planilla).
func buildItems(roundID string, items []RoundItemInput) []entity.Allocation {
	out := make([]entity.Allocation, 0, len(items))
	for _, it := range items {
		if it.Quantity == 0 {
			continue
		}
		out = append(out, entity.Allocation{
			ID:        uuid.New().String(),
			RoundID:   roundID,
			BranchID:  it.BranchID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return out
}

// Create crea el round con sus items y recalcula el agregado completo.
func (uc *RoundUseCase) Create(ctx context.Context, input RoundInput, createdBy string) (*entity.Round, error) {
	if err := validateRoundInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	round := &entity.Round{
		ID:        uuid.New().String(),
		RoundNo:   input.RoundNo,
		OrderDate: input.OrderDate,
		Memo:      input.Memo,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	round.Items = buildItems(round.ID, input.Items)

	err := uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		if err := roundRepo.Create(ctx, round); err != nil {
			return err
		}
		return uc.recalc.RecomputeAllInTx(ctx, roundRepo, shipmentRepo, inventoryRepo)
	})
	if err != nil {
		return nil, err
	}

	uc.auditLog(ctx, createdBy, "CREATE", "Round", round.ID, fmt.Sprintf("round_no=%d items=%d", round.RoundNo, len(round.Items)))
	return round, nil
}

// Update reemplaza cabecera e items del round y recalcula el agregado completo.
func (uc *RoundUseCase) Update(ctx context.Context, id string, input RoundInput, updatedBy string) (*entity.Round, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateRoundInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Round
	err := uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		existing, err := roundRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		existing.RoundNo = input.RoundNo
		existing.OrderDate = input.OrderDate
		existing.Memo = input.Memo
		existing.UpdatedAt = time.Now()
		existing.Items = buildItems(existing.ID, input.Items)
		if err := roundRepo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return uc.recalc.RecomputeAllInTx(ctx, roundRepo, shipmentRepo, inventoryRepo)
	})
	if err != nil {
		return nil, err
	}

	uc.auditLog(ctx, updatedBy, "UPDATE", "Round", updated.ID, fmt.Sprintf("round_no=%d items=%d", updated.RoundNo, len(updated.Items)))
	return updated, nil
}

// Delete elimina el round (sus items caen en cascada) y recalcula el agregado completo.
func (uc *RoundUseCase) Delete(ctx context.Context, id, deletedBy string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		if err := roundRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recalc.RecomputeAllInTx(ctx, roundRepo, shipmentRepo, inventoryRepo)
	})
	if err != nil {
		return err
	}
	uc.auditLog(ctx, deletedBy, "DELETE", "Round", id, "")
	return nil
}

// Get devuelve un round con sus items.
func (uc *RoundUseCase) Get(ctx context.Context, id string) (*entity.Round, error) {
	return uc.roundRepo.GetByID(ctx, id)
}

// List devuelve todos los rounds, más reciente primero.
func (uc *RoundUseCase) List(ctx context.Context) ([]*entity.Round, error) {
	return uc.roundRepo.List(ctx)
}

func (uc *RoundUseCase) auditLog(ctx context.Context, userID, action, ent, entityID, detail string) {
	if err := uc.audit.Append(ctx, userID, action, ent, entityID, detail); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Str("entity", ent).Msg("append de auditoría falló")
	}
}
