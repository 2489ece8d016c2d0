package entity

import "time"

// Estados de entrega de un despacho. La secuencia PENDING → PREPARING →
// IN_TRANSIT → DELIVERED es la esperada pero no se fuerza: cualquier
// transición es aceptada.
const (
	DeliveryStatusPENDING   = "PENDING"
	DeliveryStatusPREPARING = "PREPARING"
	DeliveryStatusINTRANSIT = "IN_TRANSIT"
	DeliveryStatusDELIVERED = "DELIVERED"
)

// ValidDeliveryStatus indica si el string corresponde a un estado conocido.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPENDING, DeliveryStatusPREPARING, DeliveryStatusINTRANSIT, DeliveryStatusDELIVERED:
		return true
	}
	return false
}

// Shipment un evento de despacho hacia una sucursal, con una o más líneas.
// ExtraOrderRequestID referencia la solicitud de pedido extra que lo originó
// (vacío para despachos creados directamente).
type Shipment struct {
	ID                  string
	BranchID            string
	DeliveryStatus      string
	DeliveryDate        *time.Time
	ScheduledDate       *time.Time
	ScheduledTime       string
	DriverName          string
	DriverPhone         string
	DeliveredAt         *time.Time
	Notes               string
	ExtraOrderRequestID string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Lines               []ShipmentLine
}

// ShipmentLine una entrada del ledger de despacho: cantidad de un producto
// dentro de un despacho. Pertenece a exactamente un Shipment.
type ShipmentLine struct {
	ID         string
	ShipmentID string
	ProductID  string
	Quantity   int64
}
