package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// fakeBillingRepo devuelve filas fijas ya agrupadas, como lo hace la consulta real.
type fakeBillingRepo struct {
	rows []repository.BillingRow
	err  error

	gotStart, gotEnd *time.Time
	gotBranchID      string
}

func (f *fakeBillingRepo) SummaryRows(_ context.Context, start, end *time.Time, branchID string) ([]repository.BillingRow, error) {
	f.gotStart, f.gotEnd, f.gotBranchID = start, end, branchID
	return f.rows, f.err
}

func billingRow(branchID, branchCode, productCode string, qty int64, price string) repository.BillingRow {
	unitPrice := decimal.RequireFromString(price)
	return repository.BillingRow{
		BranchID:    branchID,
		BranchCode:  branchCode,
		BranchName:  "Sucursal " + branchCode,
		ProductCode: productCode,
		ProductName: "Producto " + productCode,
		Unit:        "UND",
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(qty)),
	}
}

func TestBillingSummary_AgrupaPorSucursal(t *testing.T) {
	repo := &fakeBillingRepo{rows: []repository.BillingRow{
		billingRow("b1", "CEN", "GOR-01", 10, "12.50"),
		billingRow("b1", "CEN", "LLA-02", 4, "3.75"),
		billingRow("b2", "NOR", "GOR-01", 6, "12.50"),
	}}
	uc := usecase.NewBillingUseCase(repo)

	summary, err := uc.Summary(context.Background(), nil, nil, "")
	require.NoError(t, err)

	require.Len(t, summary.Branches, 2)
	assert.Equal(t, "CEN", summary.Branches[0].BranchCode, "conserva el orden de las filas")
	assert.Equal(t, "NOR", summary.Branches[1].BranchCode)

	require.Len(t, summary.Branches[0].Items, 2)
	assert.Equal(t, "GOR-01", summary.Branches[0].Items[0].ProductCode)
	assert.True(t, summary.Branches[0].Items[0].Amount.Equal(decimal.RequireFromString("125.00")))

	// 125.00 + 15.00
	assert.True(t, summary.Branches[0].Total.Equal(decimal.RequireFromString("140.00")),
		"subtotal b1: %s", summary.Branches[0].Total)
	assert.True(t, summary.Branches[1].Total.Equal(decimal.RequireFromString("75.00")))
	assert.True(t, summary.GrandTotal.Equal(decimal.RequireFromString("215.00")),
		"total general: %s", summary.GrandTotal)
}

func TestBillingSummary_SinFilas(t *testing.T) {
	uc := usecase.NewBillingUseCase(&fakeBillingRepo{})

	summary, err := uc.Summary(context.Background(), nil, nil, "")
	require.NoError(t, err)
	assert.Empty(t, summary.Branches)
	assert.True(t, summary.GrandTotal.IsZero())
}

func TestBillingSummary_PropagaFiltros(t *testing.T) {
	repo := &fakeBillingRepo{}
	uc := usecase.NewBillingUseCase(repo)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	_, err := uc.Summary(context.Background(), &start, &end, "b1")
	require.NoError(t, err)

	require.NotNil(t, repo.gotStart)
	assert.True(t, repo.gotStart.Equal(start))
	require.NotNil(t, repo.gotEnd)
	assert.True(t, repo.gotEnd.Equal(end))
	assert.Equal(t, "b1", repo.gotBranchID)
}
