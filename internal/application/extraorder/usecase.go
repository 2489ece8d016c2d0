package extraorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/promostock-api/internal/application/alert"
	"github.com/jhoicas/promostock-api/internal/application/ports"
	"github.com/jhoicas/promostock-api/internal/application/stock"
	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

// UseCase implementa el workflow de pedidos extra: una sucursal solicita stock
// adicional y la revisión central lo aprueba o rechaza. La aprobación convierte
// la solicitud en un despacho de una línea, de forma atómica y bajo el
// invariante de stock remaining >= cantidad.
type UseCase struct {
	txRunner       stock.TxRunner
	extraOrderRepo repository.ExtraOrderRepository
	inventoryRepo  repository.InventoryRepository
	branchRepo     repository.BranchRepository
	productRepo    repository.ProductRepository
	notifier       *alert.Notifier
	monitor        *alert.Monitor
	audit          ports.AuditSink
	log            *logger.Logger
}

// NewUseCase construye el workflow.
func NewUseCase(
	txRunner stock.TxRunner,
	extraOrderRepo repository.ExtraOrderRepository,
	inventoryRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	notifier *alert.Notifier,
	monitor *alert.Monitor,
	audit ports.AuditSink,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		extraOrderRepo: extraOrderRepo,
		inventoryRepo:  inventoryRepo,
		branchRepo:     branchRepo,
		productRepo:    productRepo,
		notifier:       notifier,
		monitor:        monitor,
		audit:          audit,
		log:            log,
	}
}

// SubmitInput entrada para crear una solicitud de pedido extra.
type SubmitInput struct {
	BranchID    string
	ProductID   string
	Quantity    int64
	Reason      string
	Memo        string
	DesiredDate *time.Time
	DesiredTime string
	RequestedBy string
}

// Submit crea la solicitud en estado PENDING y avisa a los revisores centrales.
func (uc *UseCase) Submit(ctx context.Context, input SubmitInput) (*entity.ExtraOrderRequest, error) {
	if input.BranchID == "" || input.ProductID == "" || input.RequestedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	branch, err := uc.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req := &entity.ExtraOrderRequest{
		ID:          uuid.New().String(),
		BranchID:    input.BranchID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		Reason:      input.Reason,
		Memo:        input.Memo,
		DesiredDate: input.DesiredDate,
		DesiredTime: input.DesiredTime,
		Status:      entity.ExtraOrderStatusPENDING,
		RequestedBy: input.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.extraOrderRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	uc.notifier.NotifyAdminsAndHQ(ctx, entity.NotificationTypeEXTRAORDER,
		"Solicitud de pedido extra",
		fmt.Sprintf("%s - %s: solicitud de %d unidades adicionales", branch.Name, product.Name, input.Quantity))
	uc.auditLog(ctx, input.RequestedBy, "CREATE", "ExtraOrderRequest", req.ID,
		fmt.Sprintf("producto=%s cantidad=%d", input.ProductID, input.Quantity))

	return req, nil
}

// Approve aprueba una solicitud PENDING y crea el despacho correspondiente en
// la misma transacción. El chequeo de stock se hace dos veces: una lectura
// rápida sin bloqueo para fallar temprano, y la revalidación definitiva dentro
// de la tx con la fila de la solicitud y la del agregado bloqueadas
// (FOR UPDATE). Si la revalidación contradice la lectura previa, la carrera se
// reporta como ErrConcurrencyConflict y nada se escribe.
func (uc *UseCase) Approve(ctx context.Context, requestID, reviewerID string) (*entity.ExtraOrderRequest, error) {
	if requestID == "" || reviewerID == "" {
		return nil, domain.ErrInvalidInput
	}

	req, err := uc.extraOrderRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		return nil, domain.ErrInvalidState
	}

	// Pre-chequeo sin bloqueo: agregado ausente equivale a remaining = 0.
	var preRemaining int64
	if agg, err := uc.inventoryRepo.Get(ctx, req.BranchID, req.ProductID); err == nil {
		preRemaining = agg.Remaining()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if preRemaining < req.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	var approved *entity.ExtraOrderRequest
	err = uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		extraOrderRepo repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		locked, err := extraOrderRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if !locked.IsPending() {
			return domain.ErrInvalidState
		}

		// Bloquear la fila del agregado mantiene chequeo y escritura en la
		// misma ventana frente a otras aprobaciones del mismo par.
		if _, err := inventoryRepo.GetForUpdate(ctx, locked.BranchID, locked.ProductID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		totalOrdered, err := roundRepo.SumOrdered(ctx, locked.BranchID, locked.ProductID)
		if err != nil {
			return err
		}
		totalShipped, err := shipmentRepo.SumShipped(ctx, locked.BranchID, locked.ProductID)
		if err != nil {
			return err
		}
		if remaining := totalOrdered - totalShipped; remaining < locked.Quantity {
			// El pre-chequeo pasó: otra aprobación ganó la ventana.
			return domain.ErrConcurrencyConflict
		}

		now := time.Now()
		locked.Status = entity.ExtraOrderStatusAPPROVED
		locked.ReviewedBy = reviewerID
		locked.ReviewedAt = &now
		locked.UpdatedAt = now
		if err := extraOrderRepo.UpdateReview(ctx, locked); err != nil {
			return err
		}

		shipment := &entity.Shipment{
			ID:                  uuid.New().String(),
			BranchID:            locked.BranchID,
			DeliveryStatus:      entity.DeliveryStatusPENDING,
			ExtraOrderRequestID: locked.ID,
			CreatedBy:           reviewerID,
			CreatedAt:           now,
			UpdatedAt:           now,
			Lines: []entity.ShipmentLine{{
				ID:        uuid.New().String(),
				ProductID: locked.ProductID,
				Quantity:  locked.Quantity,
			}},
		}
		if err := shipmentRepo.Create(ctx, shipment); err != nil {
			return err
		}

		agg := &entity.InventoryAggregate{
			BranchID:     locked.BranchID,
			ProductID:    locked.ProductID,
			TotalOrdered: totalOrdered,
			TotalShipped: totalShipped + locked.Quantity,
			UpdatedAt:    now,
		}
		if err := inventoryRepo.Upsert(ctx, agg); err != nil {
			return err
		}

		approved = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Efectos post-commit, best-effort.
	uc.monitor.Check(ctx, approved.BranchID, approved.ProductID)
	if product, err := uc.productRepo.GetByID(ctx, approved.ProductID); err == nil {
		uc.notifier.NotifyBranchUsers(ctx, approved.BranchID, entity.NotificationTypeEXTRAORDER,
			"Pedido extra aprobado",
			fmt.Sprintf("Se aprobó el pedido extra de %d unidades de %s", approved.Quantity, product.Name))
	}
	uc.auditLog(ctx, reviewerID, "APPROVE", "ExtraOrderRequest", approved.ID,
		fmt.Sprintf("producto=%s cantidad=%d", approved.ProductID, approved.Quantity))

	return approved, nil
}

// Reject rechaza una solicitud PENDING. Sin efecto sobre los ledgers.
func (uc *UseCase) Reject(ctx context.Context, requestID, reviewerID string) (*entity.ExtraOrderRequest, error) {
	if requestID == "" || reviewerID == "" {
		return nil, domain.ErrInvalidInput
	}

	var rejected *entity.ExtraOrderRequest
	err := uc.txRunner.Run(ctx, func(
		_ repository.RoundRepository,
		_ repository.ShipmentRepository,
		extraOrderRepo repository.ExtraOrderRepository,
		_ repository.InventoryRepository,
	) error {
		locked, err := extraOrderRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if !locked.IsPending() {
			return domain.ErrInvalidState
		}
		now := time.Now()
		locked.Status = entity.ExtraOrderStatusREJECTED
		locked.ReviewedBy = reviewerID
		locked.ReviewedAt = &now
		locked.UpdatedAt = now
		if err := extraOrderRepo.UpdateReview(ctx, locked); err != nil {
			return err
		}
		rejected = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if product, err := uc.productRepo.GetByID(ctx, rejected.ProductID); err == nil {
		uc.notifier.NotifyBranchUsers(ctx, rejected.BranchID, entity.NotificationTypeEXTRAORDER,
			"Pedido extra rechazado",
			fmt.Sprintf("Se rechazó el pedido extra de %d unidades de %s", rejected.Quantity, product.Name))
	}
	uc.auditLog(ctx, reviewerID, "REJECT", "ExtraOrderRequest", rejected.ID, "")

	return rejected, nil
}

// Get devuelve una solicitud por id.
func (uc *UseCase) Get(ctx context.Context, requestID string) (*entity.ExtraOrderRequest, error) {
	return uc.extraOrderRepo.GetByID(ctx, requestID)
}

// List filtra por status y/o sucursal (vacío = sin filtro).
func (uc *UseCase) List(ctx context.Context, status, branchID string) ([]*entity.ExtraOrderRequest, error) {
	if status != "" {
		switch status {
		case entity.ExtraOrderStatusPENDING, entity.ExtraOrderStatusAPPROVED, entity.ExtraOrderStatusREJECTED:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.extraOrderRepo.List(ctx, status, branchID)
}

func (uc *UseCase) auditLog(ctx context.Context, userID, action, ent, entityID, detail string) {
	if err := uc.audit.Append(ctx, userID, action, ent, entityID, detail); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Str("entity", ent).Msg("append de auditoría falló")
	}
}
