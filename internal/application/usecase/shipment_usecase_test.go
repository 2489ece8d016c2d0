package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/promostock-api/internal/application/alert"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/testutil"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

func newShipmentUC(store *testutil.Store, notifs *testutil.NotificationSink, audits *testutil.AuditSink) *usecase.ShipmentUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	notifier := alert.NewNotifier(&testutil.UserRepo{S: store}, notifs, log)
	monitor := alert.NewMonitor(
		&testutil.ThresholdRepo{S: store}, &testutil.InventoryRepo{S: store},
		&testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store},
		notifier, log,
	)
	return usecase.NewShipmentUseCase(
		&testutil.TxRunner{S: store}, &testutil.ShipmentRepo{S: store},
		&testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store},
		notifier, monitor, audits, log,
	)
}

func shipmentStore() *testutil.Store {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddProduct("p1", "Gorras")
	store.AddProduct("p2", "Llaveros")
	return store
}

func TestShipmentCreate_RecalculaParesAfectados(t *testing.T) {
	store := shipmentStore()
	uc := newShipmentUC(store, &testutil.NotificationSink{}, &testutil.AuditSink{})

	shipment, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines: []usecase.ShipmentLineInput{
			{ProductID: "p1", Quantity: 10},
			{ProductID: "p2", Quantity: 4},
		},
	}, "admin1")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusPENDING, shipment.DeliveryStatus)
	require.Len(t, shipment.Lines, 2)

	assert.Equal(t, int64(10), store.Aggregate("b1", "p1").TotalShipped)
	assert.Equal(t, int64(4), store.Aggregate("b1", "p2").TotalShipped)
	// Sin asignaciones, el despacho deja remaining negativo (permitido).
	assert.Equal(t, int64(-10), store.Aggregate("b1", "p1").Remaining())
}

func TestShipmentCreate_Validaciones(t *testing.T) {
	store := shipmentStore()
	uc := newShipmentUC(store, &testutil.NotificationSink{}, &testutil.AuditSink{})

	_, err := uc.Create(context.Background(), usecase.CreateShipmentInput{BranchID: "b1"}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 0}},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines: []usecase.ShipmentLineInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrDuplicate, "producto repetido")

	_, err = uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "no-existe",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 1}},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "sucursal inexistente")
}

// La sucursal destino recibe el aviso del despacho; usuarios de otras
// sucursales no.
func TestShipmentCreate_NotificaASucursal(t *testing.T) {
	store := shipmentStore()
	store.AddUser("branch1", entity.RoleBRANCH, "b1")
	store.AddUser("branch2", entity.RoleBRANCH, "b2")
	store.AddUser("admin1", entity.RoleADMIN, "")
	notifs := &testutil.NotificationSink{}
	uc := newShipmentUC(store, notifs, &testutil.AuditSink{})

	_, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines: []usecase.ShipmentLineInput{
			{ProductID: "p1", Quantity: 10},
			{ProductID: "p2", Quantity: 2},
		},
	}, "admin1")
	require.NoError(t, err)

	require.Len(t, notifs.Records, 1)
	rec := notifs.Records[0]
	assert.Equal(t, "branch1", rec.UserID)
	assert.Equal(t, entity.NotificationTypeSHIPMENT, rec.Type)
	assert.Equal(t, "Despacho creado", rec.Title)
	assert.Contains(t, rec.Message, "Centro")
	assert.Contains(t, rec.Message, "12 unidades")
}

func TestShipmentCreate_DisparaAlertaDeUmbral(t *testing.T) {
	store := shipmentStore()
	store.AddUser("admin1", entity.RoleADMIN, "")
	store.SetThreshold("b1", "p1", 5)
	store.Rounds["r1"] = &entity.Round{
		ID: "r1", RoundNo: 1, OrderDate: time.Now(), CreatedAt: time.Now(),
		Items: []entity.Allocation{{BranchID: "b1", ProductID: "p1", Quantity: 10}},
	}
	notifs := &testutil.NotificationSink{}
	uc := newShipmentUC(store, notifs, &testutil.AuditSink{})

	_, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 7}},
	}, "admin1") // remaining queda en 3 <= 5
	require.NoError(t, err)

	require.NotEmpty(t, notifs.Records)
	assert.Equal(t, entity.NotificationTypeLOWSTOCK, notifs.Records[0].Type)
}

func TestShipmentUpdateStatus_DeliveredEstampaFecha(t *testing.T) {
	store := shipmentStore()
	uc := newShipmentUC(store, &testutil.NotificationSink{}, &testutil.AuditSink{})

	shipment, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 3}},
	}, "admin1")
	require.NoError(t, err)
	shippedBefore := store.Aggregate("b1", "p1").TotalShipped

	updated, err := uc.UpdateStatus(context.Background(), shipment.ID, usecase.UpdateStatusInput{
		Status:     entity.DeliveryStatusDELIVERED,
		DriverName: "Carlos",
	}, "admin1")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDELIVERED, updated.DeliveryStatus)
	require.NotNil(t, updated.DeliveredAt, "DELIVERED estampa deliveredAt")
	assert.Equal(t, "Carlos", updated.DriverName)

	// El estado de entrega no toca el agregado.
	assert.Equal(t, shippedBefore, store.Aggregate("b1", "p1").TotalShipped)
}

func TestShipmentUpdateStatus_CualquierTransicion(t *testing.T) {
	store := shipmentStore()
	uc := newShipmentUC(store, &testutil.NotificationSink{}, &testutil.AuditSink{})

	shipment, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 3}},
	}, "admin1")
	require.NoError(t, err)

	// DELIVERED y de vuelta a PENDING: no se fuerza la secuencia.
	_, err = uc.UpdateStatus(context.Background(), shipment.ID, usecase.UpdateStatusInput{Status: entity.DeliveryStatusDELIVERED}, "admin1")
	require.NoError(t, err)
	back, err := uc.UpdateStatus(context.Background(), shipment.ID, usecase.UpdateStatusInput{Status: entity.DeliveryStatusPENDING}, "admin1")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusPENDING, back.DeliveryStatus)

	_, err = uc.UpdateStatus(context.Background(), shipment.ID, usecase.UpdateStatusInput{Status: "INVENTADO"}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestShipmentDelete_RestauraAgregado(t *testing.T) {
	store := shipmentStore()
	uc := newShipmentUC(store, &testutil.NotificationSink{}, &testutil.AuditSink{})

	shipment, err := uc.Create(context.Background(), usecase.CreateShipmentInput{
		BranchID: "b1",
		Lines:    []usecase.ShipmentLineInput{{ProductID: "p1", Quantity: 9}},
	}, "admin1")
	require.NoError(t, err)
	require.Equal(t, int64(9), store.Aggregate("b1", "p1").TotalShipped)

	require.NoError(t, uc.Delete(context.Background(), shipment.ID, "admin1"))
	assert.Equal(t, int64(0), store.Aggregate("b1", "p1").TotalShipped, "borrar el despacho devuelve lo despachado")

	err = uc.Delete(context.Background(), shipment.ID, "admin1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
