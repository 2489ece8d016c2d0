package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// InventoryRepository puerto sobre el agregado derivado de inventario.
// Get y GetForUpdate devuelven domain.ErrNotFound si el par aún no se
// materializó (el caller lo trata como remaining = 0).
type InventoryRepository interface {
	Get(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error)
	// GetForUpdate bloquea la fila del agregado (SELECT FOR UPDATE) para
	// mantener el chequeo de stock y la escritura en la misma ventana.
	GetForUpdate(ctx context.Context, branchID, productID string) (*entity.InventoryAggregate, error)
	Upsert(ctx context.Context, agg *entity.InventoryAggregate) error
	// List filtra por sucursal si branchID no es vacío; ordena por sucursal, producto.
	List(ctx context.Context, branchID string) ([]*entity.InventoryAggregate, error)
	// ListPairs devuelve los pares ya materializados (una fila de agregado,
	// una vez creada, nunca se borra).
	ListPairs(ctx context.Context) ([]Pair, error)
}
