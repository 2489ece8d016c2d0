package dto

import (
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// CreateExtraOrderRequest solicitud de stock adicional de una sucursal.
// La sucursal sale del token del solicitante, no del cuerpo.
type CreateExtraOrderRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    int64  `json:"quantity" validate:"required,min=1"`
	Reason      string `json:"reason"`
	Memo        string `json:"memo"`
	DesiredDate string `json:"desired_date"`
	DesiredTime string `json:"desired_time"`
}

// ExtraOrderResponse una solicitud de pedido extra.
type ExtraOrderResponse struct {
	ID          string     `json:"id"`
	BranchID    string     `json:"branch_id"`
	ProductID   string     `json:"product_id"`
	Quantity    int64      `json:"quantity"`
	Reason      string     `json:"reason,omitempty"`
	Memo        string     `json:"memo,omitempty"`
	DesiredDate string     `json:"desired_date,omitempty"`
	DesiredTime string     `json:"desired_time,omitempty"`
	Status      string     `json:"status"`
	RequestedBy string     `json:"requested_by"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromExtraOrder arma la respuesta desde la entidad.
func FromExtraOrder(r *entity.ExtraOrderRequest) ExtraOrderResponse {
	return ExtraOrderResponse{
		ID:          r.ID,
		BranchID:    r.BranchID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		Reason:      r.Reason,
		Memo:        r.Memo,
		DesiredDate: FormatDate(r.DesiredDate),
		DesiredTime: r.DesiredTime,
		Status:      r.Status,
		RequestedBy: r.RequestedBy,
		ReviewedBy:  r.ReviewedBy,
		ReviewedAt:  r.ReviewedAt,
		CreatedAt:   r.CreatedAt,
	}
}
