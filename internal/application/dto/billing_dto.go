package dto

import "github.com/shopspring/decimal"

// BillingItemResponse una línea valorizada del resumen.
type BillingItemResponse struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// BranchBillingResponse resumen de una sucursal con subtotal.
type BranchBillingResponse struct {
	BranchID   string                `json:"branch_id"`
	BranchCode string                `json:"branch_code"`
	BranchName string                `json:"branch_name"`
	Items      []BillingItemResponse `json:"items"`
	Total      decimal.Decimal       `json:"total"`
}

// BillingSummaryResponse resumen completo del período.
type BillingSummaryResponse struct {
	Branches   []BranchBillingResponse `json:"branches"`
	GrandTotal decimal.Decimal         `json:"grand_total"`
}
