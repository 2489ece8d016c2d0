package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
)

// BillingHandler maneja el resumen de facturación por sucursal (protegido).
type BillingHandler struct {
	uc *usecase.BillingUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *usecase.BillingUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de facturación por sucursal
// @Description  Líneas despachadas valorizadas a precio de lista dentro del
//
//	rango [start, end]. Toda línea cuenta sin importar el estado de entrega.
//
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        start      query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end        query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        branch_id  query  string  false  "Filtrar por sucursal"
// @Success      200  {object}  dto.BillingSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/billing/summary [get]
func (h *BillingHandler) Summary(c *fiber.Ctx) error {
	start, err := dto.ParseDate(c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido (YYYY-MM-DD)"})
	}
	end, err := dto.ParseDate(c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido (YYYY-MM-DD)"})
	}
	summary, err := h.uc.Summary(c.Context(), start, end, c.Query("branch_id"))
	if err != nil {
		return mapDomainError(c, err)
	}

	resp := dto.BillingSummaryResponse{
		Branches:   make([]dto.BranchBillingResponse, 0, len(summary.Branches)),
		GrandTotal: summary.GrandTotal,
	}
	for _, b := range summary.Branches {
		branch := dto.BranchBillingResponse{
			BranchID:   b.BranchID,
			BranchCode: b.BranchCode,
			BranchName: b.BranchName,
			Items:      make([]dto.BillingItemResponse, 0, len(b.Items)),
			Total:      b.Total,
		}
		for _, it := range b.Items {
			branch.Items = append(branch.Items, dto.BillingItemResponse{
				ProductCode: it.ProductCode,
				ProductName: it.ProductName,
				Unit:        it.Unit,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Amount:      it.Amount,
			})
		}
		resp.Branches = append(resp.Branches, branch)
	}
	return c.JSON(resp)
}
