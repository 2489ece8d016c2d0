package stock

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// RecalcUseCase mantiene el agregado derivado de inventario: recalcula y
// upserta (branch, product) desde los dos ledgers (asignaciones y líneas de
// despacho). El agregado nunca es fuente de verdad; recalcular es idempotente.
type RecalcUseCase struct {
	txRunner    TxRunner
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository

	// mu serializa los recomputes totales: dos recomputes concurrentes
	// intercalando upserts desfasados dejarían celdas stale.
	mu    sync.Mutex
	group singleflight.Group
}

// NewRecalcUseCase construye el caso de uso.
func NewRecalcUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
) *RecalcUseCase {
	return &RecalcUseCase{
		txRunner:    txRunner,
		branchRepo:  branchRepo,
		productRepo: productRepo,
	}
}

// RecomputeOne recalcula y upserta el agregado de un par en su propia transacción.
func (uc *RecalcUseCase) RecomputeOne(ctx context.Context, branchID, productID string) error {
	return uc.txRunner.Run(ctx, func(
		roundRepo repository.RoundRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.ExtraOrderRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		_, err := RecomputeOneInTx(ctx, roundRepo, shipmentRepo, inventoryRepo, branchID, productID)
		return err
	})
}

// RecomputeAll recalcula el agregado completo en una transacción propia.
// Invocaciones concurrentes colapsan en una sola ejecución (singleflight).
func (uc *RecalcUseCase) RecomputeAll(ctx context.Context) error {
	_, err, _ := uc.group.Do("recompute-all", func() (interface{}, error) {
		return nil, uc.txRunner.Run(ctx, func(
			roundRepo repository.RoundRepository,
			shipmentRepo repository.ShipmentRepository,
			_ repository.ExtraOrderRepository,
			inventoryRepo repository.InventoryRepository,
		) error {
			return uc.RecomputeAllInTx(ctx, roundRepo, shipmentRepo, inventoryRepo)
		})
	})
	return err
}

// RecomputeAllInTx recalcula el agregado completo usando repositorios del
// caller (normalmente atados a la transacción que acaba de mutar un round).
// Dos queries agrupadas, una por ledger, en lugar de un par de queries por
// celda; el resultado se fusiona sobre el cross-product de sucursales ×
// productos activos más los pares ya materializados y los que aparecen en los
// ledgers. Serializado proceso-wide.
func (uc *RecalcUseCase) RecomputeAllInTx(
	ctx context.Context,
	roundRepo repository.RoundRepository,
	shipmentRepo repository.ShipmentRepository,
	inventoryRepo repository.InventoryRepository,
) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	branches, err := uc.branchRepo.ListActive(ctx)
	if err != nil {
		return err
	}
	products, err := uc.productRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	orderedSums, err := roundRepo.SumOrderedGrouped(ctx)
	if err != nil {
		return err
	}
	shippedSums, err := shipmentRepo.SumShippedGrouped(ctx)
	if err != nil {
		return err
	}
	materialized, err := inventoryRepo.ListPairs(ctx)
	if err != nil {
		return err
	}

	ordered := make(map[repository.Pair]int64, len(orderedSums))
	for _, s := range orderedSums {
		ordered[repository.Pair{BranchID: s.BranchID, ProductID: s.ProductID}] = s.Total
	}
	shipped := make(map[repository.Pair]int64, len(shippedSums))
	for _, s := range shippedSums {
		shipped[repository.Pair{BranchID: s.BranchID, ProductID: s.ProductID}] = s.Total
	}

	// Unión de pares: cross-product activo, filas ya existentes (nunca se
	// borran) y cualquier par con entradas de ledger.
	pairs := make(map[repository.Pair]struct{}, len(branches)*len(products))
	for _, b := range branches {
		for _, p := range products {
			pairs[repository.Pair{BranchID: b.ID, ProductID: p.ID}] = struct{}{}
		}
	}
	for _, pr := range materialized {
		pairs[pr] = struct{}{}
	}
	for pr := range ordered {
		pairs[pr] = struct{}{}
	}
	for pr := range shipped {
		pairs[pr] = struct{}{}
	}

	now := time.Now()
	for pr := range pairs {
		agg := &entity.InventoryAggregate{
			BranchID:     pr.BranchID,
			ProductID:    pr.ProductID,
			TotalOrdered: ordered[pr],
			TotalShipped: shipped[pr],
			UpdatedAt:    now,
		}
		if err := inventoryRepo.Upsert(ctx, agg); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeOneInTx recalcula un par usando los repositorios del caller (misma
// transacción): bloquea la fila del agregado, suma ambos ledgers y upserta.
// Devuelve el agregado resultante. Función pura del estado de los ledgers;
// segura de repetir.
func RecomputeOneInTx(
	ctx context.Context,
	roundRepo repository.RoundRepository,
	shipmentRepo repository.ShipmentRepository,
	inventoryRepo repository.InventoryRepository,
	branchID, productID string,
) (*entity.InventoryAggregate, error) {
	// El bloqueo va antes de las sumas: dos escritores concurrentes del mismo
	// par se serializan aquí, y cada uno suma recién cuando ve el ledger que
	// el otro ya comiteó. Sin fila todavía no hay nada que bloquear.
	if _, err := inventoryRepo.GetForUpdate(ctx, branchID, productID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	totalOrdered, err := roundRepo.SumOrdered(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	totalShipped, err := shipmentRepo.SumShipped(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	agg := &entity.InventoryAggregate{
		BranchID:     branchID,
		ProductID:    productID,
		TotalOrdered: totalOrdered,
		TotalShipped: totalShipped,
		UpdatedAt:    time.Now(),
	}
	if err := inventoryRepo.Upsert(ctx, agg); err != nil {
		return nil, err
	}
	return agg, nil
}
