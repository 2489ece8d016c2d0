package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// InventoryHandler maneja la consulta del agregado de inventario (protegido).
type InventoryHandler struct {
	uc *usecase.InventoryQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryQueryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Consultar inventario (asignado, despachado, restante)
// @Description  El restante no se recorta: puede ser negativo. Los usuarios
//
//	BRANCH solo ven su sucursal.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Filtrar por sucursal (ignorado para BRANCH)"
// @Success      200  {array}   dto.InventoryRowResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if GetRole(c) == entity.RoleBRANCH {
		branchID = GetBranchID(c)
	}
	rows, err := h.uc.List(c.Context(), branchID)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, dto.FromInventoryAggregate(a))
	}
	return c.JSON(out)
}
