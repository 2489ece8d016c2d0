package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// BillingItem una línea del resumen: despachado de un producto valorizado.
type BillingItem struct {
	ProductCode string
	ProductName string
	Unit        string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// BranchBilling el resumen de una sucursal con su subtotal.
type BranchBilling struct {
	BranchID   string
	BranchCode string
	BranchName string
	Items      []BillingItem
	Total      decimal.Decimal
}

// BillingSummary resumen completo del período con total general.
type BillingSummary struct {
	Branches   []BranchBilling
	GrandTotal decimal.Decimal
}

// BillingUseCase arma el resumen de facturación por sucursal: líneas de
// despacho × precio de lista. Cuenta toda línea despachada sin filtrar por
// estado de entrega, con la misma política que el agregado de inventario.
type BillingUseCase struct {
	billingRepo repository.BillingRepository
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(billingRepo repository.BillingRepository) *BillingUseCase {
	return &BillingUseCase{billingRepo: billingRepo}
}

// Summary agrega el despachado valorizado dentro del rango [start, end]
// (nil = sin límite), opcionalmente filtrado por sucursal.
func (uc *BillingUseCase) Summary(ctx context.Context, start, end *time.Time, branchID string) (*BillingSummary, error) {
	rows, err := uc.billingRepo.SummaryRows(ctx, start, end, branchID)
	if err != nil {
		return nil, err
	}

	summary := &BillingSummary{GrandTotal: decimal.Zero}
	index := make(map[string]int, 8)
	for _, row := range rows {
		i, ok := index[row.BranchID]
		if !ok {
			summary.Branches = append(summary.Branches, BranchBilling{
				BranchID:   row.BranchID,
				BranchCode: row.BranchCode,
				BranchName: row.BranchName,
				Total:      decimal.Zero,
			})
			i = len(summary.Branches) - 1
			index[row.BranchID] = i
		}
		summary.Branches[i].Items = append(summary.Branches[i].Items, BillingItem{
			ProductCode: row.ProductCode,
			ProductName: row.ProductName,
			Unit:        row.Unit,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			Amount:      row.Amount,
		})
		summary.Branches[i].Total = summary.Branches[i].Total.Add(row.Amount)
		summary.GrandTotal = summary.GrandTotal.Add(row.Amount)
	}
	return summary, nil
}
