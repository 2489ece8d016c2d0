package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BillingRow una línea del resumen de facturación: despachado de un producto
// hacia una sucursal valorizado a precio de lista. Toda línea de despacho
// cuenta, igual que en el agregado de inventario.
type BillingRow struct {
	BranchID    string
	BranchCode  string
	BranchName  string
	ProductCode string
	ProductName string
	Unit        string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// BillingRepository consulta de solo lectura para el resumen de facturación.
type BillingRepository interface {
	// SummaryRows agrega líneas de despacho × precio por (sucursal, producto)
	// dentro del rango [start, end]; nil = sin límite. branchID vacío = todas.
	SummaryRows(ctx context.Context, start, end *time.Time, branchID string) ([]BillingRow, error)
}
