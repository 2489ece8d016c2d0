package alert_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/promostock-api/internal/application/alert"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/testutil"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

func newMonitor(store *testutil.Store, sink *testutil.NotificationSink) *alert.Monitor {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	notifier := alert.NewNotifier(&testutil.UserRepo{S: store}, sink, log)
	return alert.NewMonitor(
		&testutil.ThresholdRepo{S: store}, &testutil.InventoryRepo{S: store},
		&testutil.BranchRepo{S: store}, &testutil.ProductRepo{S: store},
		notifier, log,
	)
}

func seedUsers(store *testutil.Store) {
	store.AddUser("admin1", entity.RoleADMIN, "")
	store.AddUser("hq1", entity.RoleHQ, "")
	store.AddUser("branch1", entity.RoleBRANCH, "b1")
	store.AddUser("branch2", entity.RoleBRANCH, "b2")
}

func TestCheck_SinUmbralEsNoOp(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.SetAggregate("b1", "p1", 10, 10) // remaining 0, pero sin umbral
	sink := &testutil.NotificationSink{}

	newMonitor(store, sink).Check(context.Background(), "b1", "p1")

	assert.Empty(t, sink.Records)
}

func TestCheck_RemainingSobreUmbralNoAvisa(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.SetThreshold("b1", "p1", 20)
	store.SetAggregate("b1", "p1", 100, 50) // remaining 50 > 20
	sink := &testutil.NotificationSink{}

	newMonitor(store, sink).Check(context.Background(), "b1", "p1")

	assert.Empty(t, sink.Records)
}

func TestCheck_BajoUmbralAvisaAmbosGrupos(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.AddBranch("b1", "Sucursal Centro")
	store.AddProduct("p1", "Gorras")
	store.SetThreshold("b1", "p1", 20)
	store.SetAggregate("b1", "p1", 100, 85) // remaining 15 <= 20
	sink := &testutil.NotificationSink{}

	newMonitor(store, sink).Check(context.Background(), "b1", "p1")

	var notified []string
	for _, n := range sink.Records {
		assert.Equal(t, entity.NotificationTypeLOWSTOCK, n.Type)
		assert.Equal(t, "Alerta de stock bajo", n.Title)
		assert.Contains(t, n.Message, "Sucursal Centro - Gorras")
		assert.Contains(t, n.Message, "restante: 15 (umbral: 20)")
		notified = append(notified, n.UserID)
	}
	// Revisores centrales + usuarios de la sucursal; branch2 queda fuera.
	assert.ElementsMatch(t, []string{"admin1", "hq1", "branch1"}, notified)
}

// Umbral exacto también califica (remaining <= umbral).
func TestCheck_IgualAlUmbralAvisa(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.SetThreshold("b1", "p1", 20)
	store.SetAggregate("b1", "p1", 100, 80) // remaining 20
	sink := &testutil.NotificationSink{}

	newMonitor(store, sink).Check(context.Background(), "b1", "p1")

	assert.NotEmpty(t, sink.Records)
}

func TestCheck_AgregadoAusenteEsNoOp(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.SetThreshold("b1", "p1", 20)
	sink := &testutil.NotificationSink{}

	newMonitor(store, sink).Check(context.Background(), "b1", "p1")

	assert.Empty(t, sink.Records)
}

// El monitor es best-effort: un sink roto no hace panic ni propaga error.
func TestCheck_SinkRotoNoPanic(t *testing.T) {
	store := testutil.NewStore()
	seedUsers(store)
	store.SetThreshold("b1", "p1", 20)
	store.SetAggregate("b1", "p1", 100, 90)
	sink := &testutil.NotificationSink{Fail: errors.New("sink caído")}

	assert.NotPanics(t, func() {
		newMonitor(store, sink).Check(context.Background(), "b1", "p1")
	})
}
