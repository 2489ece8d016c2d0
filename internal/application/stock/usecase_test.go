package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/promostock-api/internal/application/stock"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/testutil"
)

func addRound(s *testutil.Store, id string, roundNo int, items ...entity.Allocation) {
	s.Rounds[id] = &entity.Round{
		ID:        id,
		RoundNo:   roundNo,
		OrderDate: time.Now(),
		CreatedAt: time.Now(),
		Items:     items,
	}
}

func addShipment(s *testutil.Store, id, branchID string, lines ...entity.ShipmentLine) {
	s.Shipments[id] = &entity.Shipment{
		ID:             id,
		BranchID:       branchID,
		DeliveryStatus: entity.DeliveryStatusPENDING,
		CreatedAt:      time.Now(),
		Lines:          lines,
	}
}

func TestRecomputeOne_SumaAmbosLedgers(t *testing.T) {
	store := testutil.NewStore()
	addRound(store, "r1", 1,
		entity.Allocation{BranchID: "b1", ProductID: "p1", Quantity: 60},
		entity.Allocation{BranchID: "b2", ProductID: "p1", Quantity: 10},
	)
	addRound(store, "r2", 2,
		entity.Allocation{BranchID: "b1", ProductID: "p1", Quantity: 40},
	)
	addShipment(store, "s1", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 30})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeOne(context.Background(), "b1", "p1"))

	agg := store.Aggregate("b1", "p1")
	require.NotNil(t, agg)
	assert.Equal(t, int64(100), agg.TotalOrdered, "suma a través de todos los rounds")
	assert.Equal(t, int64(30), agg.TotalShipped)
	assert.Equal(t, int64(70), agg.Remaining())
}

func TestRecomputeOne_Idempotente(t *testing.T) {
	store := testutil.NewStore()
	addRound(store, "r1", 1, entity.Allocation{BranchID: "b1", ProductID: "p1", Quantity: 25})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeOne(context.Background(), "b1", "p1"))
	require.NoError(t, uc.RecomputeOne(context.Background(), "b1", "p1"))

	agg := store.Aggregate("b1", "p1")
	require.NotNil(t, agg)
	assert.Equal(t, int64(25), agg.TotalOrdered)
	assert.Equal(t, int64(0), agg.TotalShipped)
}

// El sobre-despacho está permitido: remaining negativo no es error.
func TestRecomputeOne_RemainingNegativo(t *testing.T) {
	store := testutil.NewStore()
	addRound(store, "r1", 1, entity.Allocation{BranchID: "b1", ProductID: "p1", Quantity: 10})
	addShipment(store, "s1", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 25})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeOne(context.Background(), "b1", "p1"))

	agg := store.Aggregate("b1", "p1")
	require.NotNil(t, agg)
	assert.Equal(t, int64(-15), agg.Remaining())
}

// Toda línea de despacho cuenta, sin importar el estado de entrega.
func TestRecomputeOne_EstadoDeEntregaNoFiltra(t *testing.T) {
	store := testutil.NewStore()
	addShipment(store, "s1", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 5})
	store.Shipments["s1"].DeliveryStatus = entity.DeliveryStatusDELIVERED
	addShipment(store, "s2", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 7})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeOne(context.Background(), "b1", "p1"))

	agg := store.Aggregate("b1", "p1")
	require.NotNil(t, agg)
	assert.Equal(t, int64(12), agg.TotalShipped)
}

// Repos con traza de llamadas para verificar el orden bloqueo → sumas → upsert.
type callTrace struct{ calls []string }

type tracedRoundRepo struct {
	*testutil.RoundRepo
	trace *callTrace
}

func (r *tracedRoundRepo) SumOrdered(ctx context.Context, branchID, productID string) (int64, error) {
	r.trace.calls = append(r.trace.calls, "sum-ordered")
	return r.RoundRepo.SumOrdered(ctx, branchID, productID)
}

type tracedShipmentRepo struct {
	*testutil.ShipmentRepo
	trace *callTrace
}

func (r *tracedShipmentRepo) SumShipped(ctx context.Context, branchID, productID string) (int64, error) {
	r.trace.calls = append(r.trace.calls, "sum-shipped")
	return r.ShipmentRepo.SumShipped(ctx, branchID, productID)
}

type tracedInventoryRepo struct {
	*testutil.InventoryRepo
	trace *callTrace
}

func (r *tracedInventoryRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error) {
	r.trace.calls = append(r.trace.calls, "lock")
	return r.InventoryRepo.GetForUpdate(ctx, branchID, productID)
}

func (r *tracedInventoryRepo) Upsert(ctx context.Context, agg *entity.InventoryAggregate) error {
	r.trace.calls = append(r.trace.calls, "upsert")
	return r.InventoryRepo.Upsert(ctx, agg)
}

// El bloqueo de la fila del agregado tiene que preceder a las sumas: dos
// escritores concurrentes del mismo par se serializan en él, y el segundo suma
// recién cuando el primero ya comiteó su línea. Sumar antes de bloquear deja
// que el upsert tardío pise el agregado con totales stale.
func TestRecomputeOneInTx_BloqueaAntesDeSumar(t *testing.T) {
	store := testutil.NewStore()
	store.SetAggregate("b1", "p1", 10, 0)
	addShipment(store, "s1", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 4})

	trace := &callTrace{}
	_, err := stock.RecomputeOneInTx(
		context.Background(),
		&tracedRoundRepo{RoundRepo: &testutil.RoundRepo{S: store}, trace: trace},
		&tracedShipmentRepo{ShipmentRepo: &testutil.ShipmentRepo{S: store}, trace: trace},
		&tracedInventoryRepo{InventoryRepo: &testutil.InventoryRepo{S: store}, trace: trace},
		"b1", "p1",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"lock", "sum-ordered", "sum-shipped", "upsert"}, trace.calls)
	assert.Equal(t, int64(4), store.Aggregate("b1", "p1").TotalShipped)
}

// Sin fila materializada no hay nada que bloquear: el recompute sigue igual.
func TestRecomputeOneInTx_ParSinMaterializar(t *testing.T) {
	store := testutil.NewStore()
	addShipment(store, "s1", "b1", entity.ShipmentLine{ProductID: "p1", Quantity: 4})

	trace := &callTrace{}
	agg, err := stock.RecomputeOneInTx(
		context.Background(),
		&tracedRoundRepo{RoundRepo: &testutil.RoundRepo{S: store}, trace: trace},
		&tracedShipmentRepo{ShipmentRepo: &testutil.ShipmentRepo{S: store}, trace: trace},
		&tracedInventoryRepo{InventoryRepo: &testutil.InventoryRepo{S: store}, trace: trace},
		"b1", "p1",
	)
	require.NoError(t, err)
	assert.Equal(t, int64(4), agg.TotalShipped)
	assert.Equal(t, "lock", trace.calls[0])
}

func TestRecomputeAll_CrossProductActivo(t *testing.T) {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddBranch("b2", "Norte")
	store.AddProduct("p1", "Gorras")
	addRound(store, "r1", 1, entity.Allocation{BranchID: "b1", ProductID: "p1", Quantity: 50})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeAll(context.Background()))

	// El par sin entradas de ledger también se materializa (a cero).
	require.NotNil(t, store.Aggregate("b1", "p1"))
	require.NotNil(t, store.Aggregate("b2", "p1"))
	assert.Equal(t, int64(50), store.Aggregate("b1", "p1").TotalOrdered)
	assert.Equal(t, int64(0), store.Aggregate("b2", "p1").TotalOrdered)
}

// Un par ya materializado cuya sucursal salió del cross-product activo sigue
// recalculándose: las filas del agregado nunca se borran.
func TestRecomputeAll_IncluyeParesMaterializadosFueraDelCrossProduct(t *testing.T) {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddProduct("p1", "Gorras")
	// Celda vieja de una sucursal ya no activa, con números stale.
	store.SetAggregate("b-baja", "p1", 999, 0)

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeAll(context.Background()))

	agg := store.Aggregate("b-baja", "p1")
	require.NotNil(t, agg, "la celda materializada no desaparece")
	assert.Equal(t, int64(0), agg.TotalOrdered, "sin ledger, la celda queda en cero")
}

// Pares que solo existen en los ledgers (nunca materializados, fuera del
// cross-product) también entran en la unión.
func TestRecomputeAll_IncluyeParesSoloEnLedger(t *testing.T) {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddProduct("p1", "Gorras")
	addShipment(store, "s1", "b-externa", entity.ShipmentLine{ProductID: "p-viejo", Quantity: 3})

	uc := stock.NewRecalcUseCase(&testutil.TxRunner{S: store}, &testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store})
	require.NoError(t, uc.RecomputeAll(context.Background()))

	agg := store.Aggregate("b-externa", "p-viejo")
	require.NotNil(t, agg)
	assert.Equal(t, int64(3), agg.TotalShipped)
	assert.Equal(t, int64(-3), agg.Remaining())
}
