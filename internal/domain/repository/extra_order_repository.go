package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// ExtraOrderRepository puerto sobre las solicitudes de pedido extra.
type ExtraOrderRepository interface {
	Create(ctx context.Context, req *entity.ExtraOrderRequest) error
	GetByID(ctx context.Context, id string) (*entity.ExtraOrderRequest, error)
	// GetByIDForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE)
	// para serializar aprobaciones concurrentes de la misma solicitud.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.ExtraOrderRequest, error)
	// UpdateReview persiste el resultado de la revisión (status, revisor, fecha).
	UpdateReview(ctx context.Context, req *entity.ExtraOrderRequest) error
	// List filtra por status y/o sucursal si no son vacíos.
	List(ctx context.Context, status, branchID string) ([]*entity.ExtraOrderRequest, error)
}
