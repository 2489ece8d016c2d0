package repository

import (
	"context"
	"time"
)

// MonthlyShipped total despachado de un mes calendario. Month en formato
// YYYY-MM.
type MonthlyShipped struct {
	Month    string
	Quantity int64
}

// DashboardRepository consulta de solo lectura para la serie mensual del
// tablero. El resto del tablero se arma desde el agregado de inventario.
type DashboardRepository interface {
	// MonthlyShipped agrupa las líneas de despacho por mes calendario de
	// creación del despacho, desde `since` inclusive. Solo meses con datos.
	MonthlyShipped(ctx context.Context, since time.Time) ([]MonthlyShipped, error)
}
