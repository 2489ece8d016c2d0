package entity

import "time"

// AlertThreshold umbral de alerta de stock bajo para un (sucursal, producto).
// Configuración opcional e independiente del agregado: sin fila, no hay alerta.
type AlertThreshold struct {
	BranchID  string
	ProductID string
	Threshold int64
	UpdatedAt time.Time
}
