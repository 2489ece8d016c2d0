package repository

// Pair identifica una celda (sucursal, producto) del inventario.
type Pair struct {
	BranchID  string
	ProductID string
}

// PairSum resultado de una suma agrupada de un ledger por (sucursal, producto).
type PairSum struct {
	BranchID  string
	ProductID string
	Total     int64
}
