package entity

import "time"

// Estados de una solicitud de pedido extra. PENDING es el único estado no
// terminal: una vez aprobada o rechazada no hay vuelta atrás.
const (
	ExtraOrderStatusPENDING  = "PENDING"
	ExtraOrderStatusAPPROVED = "APPROVED"
	ExtraOrderStatusREJECTED = "REJECTED"
)

// ExtraOrderRequest una solicitud de stock adicional iniciada por una sucursal.
// Requiere aprobación central antes de convertirse en Shipment.
type ExtraOrderRequest struct {
	ID          string
	BranchID    string
	ProductID   string
	Quantity    int64
	Reason      string
	Memo        string
	DesiredDate *time.Time
	DesiredTime string
	Status      string
	RequestedBy string
	ReviewedBy  string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPending indica si la solicitud sigue abierta a revisión.
func (r *ExtraOrderRequest) IsPending() bool {
	return r.Status == ExtraOrderStatusPENDING
}
