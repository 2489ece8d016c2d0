package entity

import "time"

// InventoryAggregate el agregado derivado por (sucursal, producto): total
// asignado y total despachado. Nunca es fuente de verdad: siempre se recalcula
// desde los ledgers. Se materializa perezosamente en el primer recompute y a
// partir de ahí solo se upserta, incluso a cero; nunca se borra.
type InventoryAggregate struct {
	BranchID     string
	ProductID    string
	TotalOrdered int64
	TotalShipped int64
	UpdatedAt    time.Time
}

// Remaining asignado menos despachado. Puede ser negativo: el sobre-despacho
// está permitido y no es un error.
func (a *InventoryAggregate) Remaining() int64 {
	return a.TotalOrdered - a.TotalShipped
}
