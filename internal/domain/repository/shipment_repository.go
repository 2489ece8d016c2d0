package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// ShipmentRepository puerto sobre los despachos y su ledger de líneas.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *entity.Shipment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	// List filtra por sucursal si branchID no es vacío.
	List(ctx context.Context, branchID string) ([]*entity.Shipment, error)
	// UpdateStatus persiste estado de entrega, agenda, transportista y deliveredAt.
	UpdateStatus(ctx context.Context, shipment *entity.Shipment) error
	// SumShipped suma las líneas de despacho de un par, sin filtrar por estado
	// de entrega (toda línea cuenta desde que el despacho existe).
	SumShipped(ctx context.Context, branchID, productID string) (int64, error)
	// SumShippedGrouped una sola query agrupada para todos los pares con despachos.
	SumShippedGrouped(ctx context.Context) ([]PairSum, error)
}
