package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// RoundRepository puerto sobre los rounds de asignación y su ledger de items.
// Update reemplaza el set de items completo (los rounds no se parchean).
type RoundRepository interface {
	Create(ctx context.Context, round *entity.Round) error
	Update(ctx context.Context, round *entity.Round) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Round, error)
	List(ctx context.Context) ([]*entity.Round, error)
	// SumOrdered suma las cantidades asignadas a un par a través de todos los rounds.
	SumOrdered(ctx context.Context, branchID, productID string) (int64, error)
	// SumOrderedGrouped una sola query agrupada para todos los pares con asignaciones.
	SumOrderedGrouped(ctx context.Context) ([]PairSum, error)
}
