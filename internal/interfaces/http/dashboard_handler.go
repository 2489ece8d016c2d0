package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
)

// DashboardHandler maneja las vistas del tablero (protegidas, sin restricción
// de rol: toda vista es global, no por sucursal).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Totales globales del tablero
// @Description  Asignado, despachado, restante y tasa de despacho (%).
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	s, err := h.uc.Summary(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.DashboardSummaryResponse{
		TotalOrdered: s.TotalOrdered,
		TotalShipped: s.TotalShipped,
		Remaining:    s.Remaining,
		ShipmentRate: s.ShipmentRate,
	})
}

// MonthlyTrend godoc
// @Summary      Serie mensual de despachos (últimos 6 meses)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MonthlyTrendResponse
// @Router       /api/dashboard/monthly-trend [get]
func (h *DashboardHandler) MonthlyTrend(c *fiber.Ctx) error {
	points, err := h.uc.MonthlyTrend(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MonthlyTrendResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.MonthlyTrendResponse{Month: p.Month, Quantity: p.Quantity})
	}
	return c.JSON(out)
}

// BranchComparison godoc
// @Summary      Despachado total por sucursal
// @Description  Solo sucursales activas con al menos un despacho.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchComparisonResponse
// @Router       /api/dashboard/branch-comparison [get]
func (h *DashboardHandler) BranchComparison(c *fiber.Ctx) error {
	rows, err := h.uc.BranchComparison(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.BranchComparisonResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BranchComparisonResponse{BranchName: r.BranchName, Shipped: r.Shipped})
	}
	return c.JSON(out)
}

// Progress godoc
// @Summary      Avance de despacho por sucursal
// @Description  Asignado, despachado y porcentaje por sucursal activa.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BranchProgressResponse
// @Router       /api/dashboard/progress [get]
func (h *DashboardHandler) Progress(c *fiber.Ctx) error {
	rows, err := h.uc.Progress(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.BranchProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BranchProgressResponse{
			BranchID:   r.BranchID,
			BranchCode: r.BranchCode,
			BranchName: r.BranchName,
			Ordered:    r.Ordered,
			Shipped:    r.Shipped,
			Rate:       r.Rate,
		})
	}
	return c.JSON(out)
}
