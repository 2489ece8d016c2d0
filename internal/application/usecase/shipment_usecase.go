package usecase

import (
	"context"
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

// ShipmentUseCase administra los despachos directos. Crear o borrar un
// despacho muta el ledger de líneas: el recompute de los pares afectados
// ocurre en la misma transacción y el monitor de umbral corre después del
// commit. Un cambio de estado de entrega no toca el ledger (toda línea cuenta
// para totalShipped desde que el despacho existe, sin importar su estado).
type ShipmentUseCase struct {
	txRunner     stock.TxRunner
	shipmentRepo repository.ShipmentRepository
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	notifier     *alert.Notifier
	monitor      *alert.Monitor
	audit        ports.AuditSink
	log          *logger.Logger
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(
	txRunner stock.TxRunner,
	shipmentRepo repository.ShipmentRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	notifier *alert.Notifier,
	monitor *alert.Monitor,
	audit ports.AuditSink,
	log *logger.Logger,
) *ShipmentUseCase {
	return &ShipmentUseCase{
		txRunner:     txRunner,
		shipmentRepo: shipmentRepo,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		notifier:     notifier,
		monitor:      monitor,
		audit:        audit,
		log:          log,
	}
}

// ShipmentLineInput una línea del despacho a crear.
type ShipmentLineInput struct {
	ProductID string
	Quantity  int64
}

// CreateShipmentInput entrada para crear un despacho directo.
type CreateShipmentInput struct {
	BranchID     string
	DeliveryDate *time.Time
	Notes        string
	Lines        []ShipmentLineInput
}

// Create crea el despacho con sus líneas y recalcula los pares afectados en la
// misma transacción. Tras el commit evalúa el umbral de cada par.
func (uc *ShipmentUseCase) Create(ctx context.Context, input CreateShipmentInput, createdBy string) (*entity.Shipment, error) {
	if input.BranchID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(input.Lines))
	for _, l := range input.Lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, domain.ErrDuplicate
		}
		seen[l.ProductID] = struct{}{}
	}

	branch, err := uc.branchRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, err
	}
	for _, l := range input.Lines {
		if _, err := uc.productRepo.GetByID(ctx, l.ProductID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	shipment := &entity.Shipment{
		ID:             uuid.New().String(),
		BranchID:       input.BranchID,
		DeliveryStatus: entity.DeliveryStatusPENDING,
		DeliveryDate:   input.DeliveryDate,
		Notes:          input.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, l := range input.Lines {
		shipment.Lines = append(shipment.Lines, entity.ShipmentLine{
			ID:        uuid.New().String(),
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		if err := shipmentRepo.Create(ctx, shipment); err != nil {
			return err
		}
		for _, l := range shipment.Lines {
			if _, err := stock.RecomputeOneInTx(ctx, roundRepo, shipmentRepo, inventoryRepo, shipment.BranchID, l.ProductID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var totalQty int64
	for _, l := range shipment.Lines {
		totalQty += l.Quantity
	}
	uc.notifier.NotifyBranchUsers(ctx, shipment.BranchID, entity.NotificationTypeSHIPMENT,
		"Despacho creado",
		fmt.Sprintf("Se creó un despacho hacia %s (%d unidades)", branch.Name, totalQty))
	for _, l := range shipment.Lines {
		uc.monitor.Check(ctx, shipment.BranchID, l.ProductID)
	}
	uc.auditLog(ctx, createdBy, "CREATE", "Shipment", shipment.ID,
		fmt.Sprintf("sucursal=%s lineas=%d", shipment.BranchID, len(shipment.Lines)))

	return shipment, nil
}

// UpdateStatusInput campos opcionales del seguimiento de entrega. Los campos
// en cero se dejan como están.
type UpdateStatusInput struct {
	Status        string
	ScheduledDate *time.Time
	ScheduledTime string
	DriverName    string
	DriverPhone   string
	DeliveredAt   *time.Time
}

// UpdateStatus actualiza estado de entrega, agenda y transportista. Cualquier
// transición de estado es aceptada; al marcar DELIVERED se estampa
// deliveredAt (el provisto, o ahora). No hay recompute: el estado de entrega
// no altera totalShipped.
func (uc *ShipmentUseCase) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput, updatedBy string) (*entity.Shipment, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Status != "" && !entity.ValidDeliveryStatus(input.Status) {
		return nil, domain.ErrInvalidInput
	}

	shipment, err := uc.shipmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		shipment.DeliveryStatus = input.Status
		if input.Status == entity.DeliveryStatusDELIVERED {
			if input.DeliveredAt != nil {
				shipment.DeliveredAt = input.DeliveredAt
			} else {
				now := time.Now()
				shipment.DeliveredAt = &now
			}
		}
	} else if input.DeliveredAt != nil {
		shipment.DeliveredAt = input.DeliveredAt
	}
	if input.ScheduledDate != nil {
		shipment.ScheduledDate = input.ScheduledDate
	}
	if input.ScheduledTime != "" {
		shipment.ScheduledTime = input.ScheduledTime
	}
	if input.DriverName != "" {
		shipment.DriverName = input.DriverName
	}
	if input.DriverPhone != "" {
		shipment.DriverPhone = input.DriverPhone
	}
	shipment.UpdatedAt = time.Now()

	if err := uc.shipmentRepo.UpdateStatus(ctx, shipment); err != nil {
		return nil, err
	}

	uc.auditLog(ctx, updatedBy, "UPDATE_STATUS", "Shipment", shipment.ID,
		fmt.Sprintf("estado=%s", shipment.DeliveryStatus))
	return shipment, nil
}

// Delete elimina el despacho (líneas en cascada) y recalcula los pares que
// contenía en la misma transacción: totalShipped vuelve a su valor previo.
func (uc *ShipmentUseCase) Delete(ctx context.Context, id, deletedBy string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	var branchID string
	var productIDs []string
	err := uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		shipment, err := shipmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := shipmentRepo.Delete(ctx, id); err != nil {
			return err
		}
		branchID = shipment.BranchID
		for _, l := range shipment.Lines {
			productIDs = append(productIDs, l.ProductID)
			if _, err := stock.RecomputeOneInTx(ctx, roundRepo, shipmentRepo, inventoryRepo, shipment.BranchID, l.ProductID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, productID := range productIDs {
		uc.monitor.Check(ctx, branchID, productID)
	}
	uc.auditLog(ctx, deletedBy, "DELETE", "Shipment", id, "")
	return nil
}

// Get devuelve un despacho con sus líneas.
func (uc *ShipmentUseCase) Get(ctx context.Context, id string) (*entity.Shipment, error) {
	return uc.shipmentRepo.GetByID(ctx, id)
}

// List devuelve los despachos, filtrados por sucursal si branchID no es vacío.
func (uc *ShipmentUseCase) List(ctx context.Context, branchID string) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.List(ctx, branchID)
}

func (uc *ShipmentUseCase) auditLog(ctx context.Context, userID, action, ent, entityID, detail string) {
	if err := uc.audit.Append(ctx, userID, action, ent, entityID, detail); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Str("entity", ent).Msg("append de auditoría falló")
	}
}
