package usecase

import (
	"context"

	"github.com/jhoicas/promostock-api/internal/domain/entity"
	"github.com/jhoicas/promostock-api/internal/domain/repository"
)

// InventoryQueryUseCase lectura del agregado derivado. El remaining se expone
// tal cual (totalOrdered - totalShipped), incluidos valores negativos.
type InventoryQueryUseCase struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryQueryUseCase construye el caso de uso.
func NewInventoryQueryUseCase(inventoryRepo repository.InventoryRepository) *InventoryQueryUseCase {
	return &InventoryQueryUseCase{inventoryRepo: inventoryRepo}
}

// List devuelve el agregado por par, filtrado por sucursal si branchID no es
// vacío, ordenado por sucursal y producto.
func (uc *InventoryQueryUseCase) List(ctx context.Context, branchID string) ([]*entity.InventoryAggregate, error) {
	return uc.inventoryRepo.List(ctx, branchID)
}
