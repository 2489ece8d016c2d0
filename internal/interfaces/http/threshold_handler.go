package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
)

// ThresholdHandler maneja la configuración de umbrales de alerta (protegido).
type ThresholdHandler struct {
	uc *usecase.ThresholdUseCase
}

// NewThresholdHandler construye el handler.
func NewThresholdHandler(uc *usecase.ThresholdUseCase) *ThresholdHandler {
	return &ThresholdHandler{uc: uc}
}

// Set godoc
// @Summary      Configurar umbrales de alerta
// @Description  Upsert por lote; threshold 0 borra el umbral del par.
// @Tags         alert-thresholds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetThresholdsRequest  true  "items a aplicar"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/alert-thresholds [put]
func (h *ThresholdHandler) Set(c *fiber.Ctx) error {
	var in dto.SetThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	items := make([]usecase.ThresholdInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, usecase.ThresholdInput{
			BranchID:  it.BranchID,
			ProductID: it.ProductID,
			Threshold: it.Threshold,
		})
	}
	if err := h.uc.Set(c.Context(), items, GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "umbrales aplicados"})
}

// List godoc
// @Summary      Listar umbrales configurados
// @Tags         alert-thresholds
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ThresholdResponse
// @Router       /api/alert-thresholds [get]
func (h *ThresholdHandler) List(c *fiber.Ctx) error {
	ths, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ThresholdResponse, 0, len(ths))
	for _, t := range ths {
		out = append(out, dto.FromThreshold(t))
	}
	return c.JSON(out)
}
