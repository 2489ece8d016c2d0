package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
	"github.com/jhoicas/promostock-api/internal/testutil"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

func newThresholdUC(store *testutil.Store, audits *testutil.AuditSink) *usecase.ThresholdUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return usecase.NewThresholdUseCase(&testutil.ThresholdRepo{S: store}, audits, log)
}

func TestThresholdSet_UpsertYAuditoria(t *testing.T) {
	store := testutil.NewStore()
	audits := &testutil.AuditSink{}
	uc := newThresholdUC(store, audits)

	err := uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p1", Threshold: 20},
		{BranchID: "b1", ProductID: "p2", Threshold: 5},
	}, "admin1")
	require.NoError(t, err)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int64(20), store.Thresholds[repository.Pair{BranchID: "b1", ProductID: "p1"}].Threshold)

	// Un segundo Set sobre el mismo par reemplaza el valor.
	require.NoError(t, uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p1", Threshold: 30},
	}, "admin1"))
	assert.Equal(t, int64(30), store.Thresholds[repository.Pair{BranchID: "b1", ProductID: "p1"}].Threshold)

	require.Len(t, audits.Records, 2)
	assert.Equal(t, "SET", audits.Records[0].Action)
	assert.Equal(t, "AlertThreshold", audits.Records[0].Entity)
}

func TestThresholdSet_CeroElimina(t *testing.T) {
	store := testutil.NewStore()
	store.SetThreshold("b1", "p1", 15)
	uc := newThresholdUC(store, &testutil.AuditSink{})

	require.NoError(t, uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p1", Threshold: 0},
	}, "admin1"))
	assert.Empty(t, store.Thresholds)

	// Cero sobre un par sin umbral no es error.
	require.NoError(t, uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p9", Threshold: 0},
	}, "admin1"))
}

func TestThresholdSet_Validaciones(t *testing.T) {
	store := testutil.NewStore()
	uc := newThresholdUC(store, &testutil.AuditSink{})

	err := uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p1", Threshold: -1},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "", ProductID: "p1", Threshold: 4},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// El lote se valida completo antes de aplicar nada.
	err = uc.Set(context.Background(), []usecase.ThresholdInput{
		{BranchID: "b1", ProductID: "p1", Threshold: 4},
		{BranchID: "b1", ProductID: "p2", Threshold: -3},
	}, "admin1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Thresholds)
}
