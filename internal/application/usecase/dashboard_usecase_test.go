package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/internal/testutil"
)

// fakeDashboardRepo devuelve la serie mensual fija, como la query agrupada real.
type fakeDashboardRepo struct {
	rows     []repository.MonthlyShipped
	gotSince time.Time
}

func (f *fakeDashboardRepo) MonthlyShipped(_ context.Context, since time.Time) ([]repository.MonthlyShipped, error) {
	f.gotSince = since
	return f.rows, nil
}

func newDashboardUC(store *testutil.Store, dash *fakeDashboardRepo) *usecase.DashboardUseCase {
	if dash == nil {
		dash = &fakeDashboardRepo{}
	}
	return usecase.NewDashboardUseCase(&testutil.InventoryRepo{S: store}, &testutil.BranchRepo{S: store}, dash)
}

func TestDashboardSummary_TotalesYTasa(t *testing.T) {
	store := testutil.NewStore()
	store.SetAggregate("b1", "p1", 100, 30)
	store.SetAggregate("b2", "p1", 60, 10)
	uc := newDashboardUC(store, nil)

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(160), s.TotalOrdered)
	assert.Equal(t, int64(40), s.TotalShipped)
	assert.Equal(t, int64(120), s.Remaining)
	assert.Equal(t, 25.0, s.ShipmentRate)
}

func TestDashboardSummary_SinAsignaciones(t *testing.T) {
	store := testutil.NewStore()
	store.SetAggregate("b1", "p1", 0, 5)
	uc := newDashboardUC(store, nil)

	s, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.ShipmentRate, "sin asignado la tasa es cero, no división por cero")
	assert.Equal(t, int64(-5), s.Remaining)
}

func TestDashboardMonthlyTrend_RellenaMesesSinMovimiento(t *testing.T) {
	now := time.Now()
	thisMonth := now.Format("2006-01")
	twoAgo := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -2, 0).Format("2006-01")

	dash := &fakeDashboardRepo{rows: []repository.MonthlyShipped{
		{Month: twoAgo, Quantity: 14},
		{Month: thisMonth, Quantity: 3},
	}}
	uc := newDashboardUC(testutil.NewStore(), dash)

	points, err := uc.MonthlyTrend(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 6, "siempre seis meses, con ceros")

	assert.Equal(t, thisMonth, points[5].Month, "el último punto es el mes en curso")
	assert.Equal(t, int64(3), points[5].Quantity)
	assert.Equal(t, int64(14), points[3].Quantity)
	assert.Equal(t, int64(0), points[0].Quantity)

	// El desde es el primer día del mes de hace cinco meses.
	wantSince := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	assert.True(t, dash.gotSince.Equal(wantSince))
	assert.Equal(t, wantSince.Format("2006-01"), points[0].Month)
}

func TestDashboardBranchComparison_OmiteSucursalesSinDespachos(t *testing.T) {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddBranch("b2", "Norte")
	store.SetAggregate("b1", "p1", 50, 20)
	store.SetAggregate("b1", "p2", 30, 5)
	store.SetAggregate("b2", "p1", 40, 0)
	uc := newDashboardUC(store, nil)

	rows, err := uc.BranchComparison(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1, "sucursal sin despachos queda fuera")
	assert.Equal(t, "Centro", rows[0].BranchName)
	assert.Equal(t, int64(25), rows[0].Shipped)
}

func TestDashboardProgress_IncluyeSucursalesSinMovimiento(t *testing.T) {
	store := testutil.NewStore()
	store.AddBranch("b1", "Centro")
	store.AddBranch("b2", "Norte")
	store.SetAggregate("b1", "p1", 100, 33)
	uc := newDashboardUC(store, nil)

	rows, err := uc.Progress(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]usecase.BranchProgress{}
	for _, r := range rows {
		byName[r.BranchName] = r
	}
	assert.Equal(t, int64(100), byName["Centro"].Ordered)
	assert.Equal(t, 33, byName["Centro"].Rate)
	assert.Equal(t, int64(0), byName["Norte"].Ordered)
	assert.Equal(t, 0, byName["Norte"].Rate, "sin asignado la tasa es cero")
}
