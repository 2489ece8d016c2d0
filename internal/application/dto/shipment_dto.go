package dto

import (
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// ShipmentLineRequest una línea del despacho a crear.
type ShipmentLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CreateShipmentRequest crea un despacho directo con una o más líneas.
type CreateShipmentRequest struct {
	BranchID     string                `json:"branch_id" validate:"required"`
	DeliveryDate string                `json:"delivery_date"`
	Notes        string                `json:"notes"`
	Lines        []ShipmentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateShipmentStatusRequest campos opcionales del seguimiento de entrega.
type UpdateShipmentStatusRequest struct {
	Status        string `json:"status" validate:"omitempty,oneof=PENDING PREPARING IN_TRANSIT DELIVERED"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	DriverName    string `json:"driver_name"`
	DriverPhone   string `json:"driver_phone"`
	DeliveredAt   string `json:"delivered_at"`
}

// ShipmentLineResponse una línea en respuestas.
type ShipmentLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// ShipmentResponse un despacho con sus líneas.
type ShipmentResponse struct {
	ID                  string                 `json:"id"`
	BranchID            string                 `json:"branch_id"`
	DeliveryStatus      string                 `json:"delivery_status"`
	DeliveryDate        string                 `json:"delivery_date,omitempty"`
	ScheduledDate       string                 `json:"scheduled_date,omitempty"`
	ScheduledTime       string                 `json:"scheduled_time,omitempty"`
	DriverName          string                 `json:"driver_name,omitempty"`
	DriverPhone         string                 `json:"driver_phone,omitempty"`
	DeliveredAt         *time.Time             `json:"delivered_at,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
	ExtraOrderRequestID string                 `json:"extra_order_request_id,omitempty"`
	CreatedBy           string                 `json:"created_by"`
	CreatedAt           time.Time              `json:"created_at"`
	Lines               []ShipmentLineResponse `json:"lines"`
}

// FromShipment arma la respuesta desde la entidad.
func FromShipment(s *entity.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:                  s.ID,
		BranchID:            s.BranchID,
		DeliveryStatus:      s.DeliveryStatus,
		DeliveryDate:        FormatDate(s.DeliveryDate),
		ScheduledDate:       FormatDate(s.ScheduledDate),
		ScheduledTime:       s.ScheduledTime,
		DriverName:          s.DriverName,
		DriverPhone:         s.DriverPhone,
		DeliveredAt:         s.DeliveredAt,
		Notes:               s.Notes,
		ExtraOrderRequestID: s.ExtraOrderRequestID,
		CreatedBy:           s.CreatedBy,
		CreatedAt:           s.CreatedAt,
		Lines:               make([]ShipmentLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, ShipmentLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return resp
}
