package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// ShipmentHandler maneja las peticiones HTTP de despachos (protegido).
type ShipmentHandler struct {
	uc *usecase.ShipmentUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *usecase.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear despacho directo
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "branch_id, lines (≥1, cantidad > 0)"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	deliveryDate, err := dto.ParseDate(in.DeliveryDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delivery_date inválido (YYYY-MM-DD)"})
	}
	input := usecase.CreateShipmentInput{
		BranchID:     in.BranchID,
		DeliveryDate: deliveryDate,
		Notes:        in.Notes,
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, usecase.ShipmentLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	shipment, err := h.uc.Create(c.Context(), input, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromShipment(shipment))
}

// UpdateStatus godoc
// @Summary      Actualizar seguimiento de entrega
// @Description  Acepta cualquier transición de estado; DELIVERED estampa
//
//	delivered_at. El estado de entrega no afecta el agregado.
//
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID del despacho"
// @Param        body  body  dto.UpdateShipmentStatusRequest true  "campos opcionales de seguimiento"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [patch]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateShipmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	scheduledDate, err := dto.ParseDate(in.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "scheduled_date inválido (YYYY-MM-DD)"})
	}
	var deliveredAt *time.Time
	if in.DeliveredAt != "" {
		t, err := time.Parse(time.RFC3339, in.DeliveredAt)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delivered_at inválido (RFC3339)"})
		}
		deliveredAt = &t
	}
	input := usecase.UpdateStatusInput{
		Status:        in.Status,
		ScheduledDate: scheduledDate,
		ScheduledTime: in.ScheduledTime,
		DriverName:    in.DriverName,
		DriverPhone:   in.DriverPhone,
		DeliveredAt:   deliveredAt,
	}
	shipment, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), input, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromShipment(shipment))
}

// Delete godoc
// @Summary      Eliminar despacho (restaura el agregado)
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "despacho eliminado"})
}

// List godoc
// @Summary      Listar despachos
// @Description  Los usuarios BRANCH solo ven los despachos de su sucursal.
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Filtrar por sucursal (ignorado para BRANCH)"
// @Success      200  {array}   dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if GetRole(c) == entity.RoleBRANCH {
		branchID = GetBranchID(c)
	}
	shipments, err := h.uc.List(c.Context(), branchID)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, dto.FromShipment(s))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener despacho por ID
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del despacho"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	shipment, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if GetRole(c) == entity.RoleBRANCH && shipment.BranchID != GetBranchID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.JSON(dto.FromShipment(shipment))
}
