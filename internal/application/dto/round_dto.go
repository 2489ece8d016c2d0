package dto

import (
	"time"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// RoundItemRequest un item de asignación del round.
type RoundItemRequest struct {
	BranchID  string `json:"branch_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
}

// RoundRequest crea o reemplaza un round. En update el set de items sustituye
// al anterior completo.
type RoundRequest struct {
	RoundNo   int                `json:"round_no" validate:"required,min=1"`
	OrderDate string             `json:"order_date" validate:"required"`
	Memo      string             `json:"memo"`
	Items     []RoundItemRequest `json:"items" validate:"dive"`
}

// RoundItemResponse un item de asignación en respuestas.
type RoundItemResponse struct {
	ID        string `json:"id"`
	BranchID  string `json:"branch_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RoundResponse un round con sus items.
type RoundResponse struct {
	ID        string              `json:"id"`
	RoundNo   int                 `json:"round_no"`
	OrderDate string              `json:"order_date"`
	Memo      string              `json:"memo,omitempty"`
	CreatedBy string              `json:"created_by"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []RoundItemResponse `json:"items"`
}

// FromRound arma la respuesta desde la entidad.
func FromRound(r *entity.Round) RoundResponse {
	resp := RoundResponse{
		ID:        r.ID,
		RoundNo:   r.RoundNo,
		OrderDate: r.OrderDate.Format("2006-01-02"),
		Memo:      r.Memo,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		Items:     make([]RoundItemResponse, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		resp.Items = append(resp.Items, RoundItemResponse{
			ID:        it.ID,
			BranchID:  it.BranchID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return resp
}
