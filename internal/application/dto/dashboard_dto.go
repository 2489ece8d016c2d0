package dto

// DashboardSummaryResponse totales globales del tablero.
type DashboardSummaryResponse struct {
	TotalOrdered int64   `json:"total_ordered"`
	TotalShipped int64   `json:"total_shipped"`
	Remaining    int64   `json:"remaining"`
	ShipmentRate float64 `json:"shipment_rate"`
}

// MonthlyTrendResponse un punto de la serie mensual de despachos.
type MonthlyTrendResponse struct {
	Month    string `json:"month"`
	Quantity int64  `json:"quantity"`
}

// BranchComparisonResponse despachado total de una sucursal.
type BranchComparisonResponse struct {
	BranchName string `json:"branch_name"`
	Shipped    int64  `json:"shipped"`
}

// BranchProgressResponse avance de una sucursal sobre lo asignado.
type BranchProgressResponse struct {
	BranchID   string `json:"branch_id"`
	BranchCode string `json:"branch_code"`
	BranchName string `json:"branch_name"`
	Ordered    int64  `json:"ordered"`
	Shipped    int64  `json:"shipped"`
	Rate       int    `json:"rate"`
}
