package repository

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// BranchRepository lecturas de sucursales (master-data de otro módulo).
type BranchRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	ListActive(ctx context.Context) ([]*entity.Branch, error)
}

// ProductRepository lecturas de productos (master-data de otro módulo).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
