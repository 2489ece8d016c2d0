package entity

import "time"

// Round representa un ciclo de asignación: un lote que reparte cantidades de
// productos entre sucursales. Sus items se reemplazan completos al editar,
// nunca se parchean individualmente.
type Round struct {
	ID        string
	RoundNo   int
	OrderDate time.Time
	Memo      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	Items     []Allocation
}

// Allocation una entrada del ledger de asignación: cantidad de un producto
// asignada a una sucursal dentro de un round. Única por (round, sucursal, producto).
type Allocation struct {
	ID        string
	RoundID   string
	BranchID  string
	ProductID string
	Quantity  int64
}
