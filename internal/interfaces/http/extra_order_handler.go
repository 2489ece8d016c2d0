package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/extraorder"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// ExtraOrderHandler maneja las peticiones HTTP de pedidos extra (protegido).
type ExtraOrderHandler struct {
	uc *extraorder.UseCase
}

// NewExtraOrderHandler construye el handler.
func NewExtraOrderHandler(uc *extraorder.UseCase) *ExtraOrderHandler {
	return &ExtraOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar pedido extra
// @Description  La sucursal sale del token del solicitante, no del cuerpo.
// @Tags         extra-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExtraOrderRequest  true  "product_id, quantity > 0"
// @Success      201   {object}  dto.ExtraOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/extra-orders [post]
func (h *ExtraOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExtraOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	desiredDate, err := dto.ParseDate(in.DesiredDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desired_date inválido (YYYY-MM-DD)"})
	}
	input := extraorder.SubmitInput{
		BranchID:    GetBranchID(c),
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Memo:        in.Memo,
		DesiredDate: desiredDate,
		DesiredTime: in.DesiredTime,
		RequestedBy: GetUserID(c),
	}
	req, err := h.uc.Submit(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromExtraOrder(req))
}

// Approve godoc
// @Summary      Aprobar pedido extra
// @Description  Revalida stock bajo bloqueo y crea el despacho en la misma
//
//	transacción. 409 INSUFFICIENT_STOCK si no alcanza; 409 CONFLICT_RETRY si
//	se perdió la carrera contra otra operación concurrente.
//
// @Tags         extra-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ExtraOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/extra-orders/{id}/approve [put]
func (h *ExtraOrderHandler) Approve(c *fiber.Ctx) error {
	req, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromExtraOrder(req))
}

// Reject godoc
// @Summary      Rechazar pedido extra
// @Tags         extra-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ExtraOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/extra-orders/{id}/reject [put]
func (h *ExtraOrderHandler) Reject(c *fiber.Ctx) error {
	req, err := h.uc.Reject(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromExtraOrder(req))
}

// List godoc
// @Summary      Listar pedidos extra
// @Description  Los usuarios BRANCH solo ven las solicitudes de su sucursal.
// @Tags         extra-orders
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "PENDING | APPROVED | REJECTED"
// @Param        branch_id  query  string  false  "Filtrar por sucursal (ignorado para BRANCH)"
// @Success      200  {array}   dto.ExtraOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/extra-orders [get]
func (h *ExtraOrderHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	branchID := c.Query("branch_id")
	if GetRole(c) == entity.RoleBRANCH {
		branchID = GetBranchID(c)
	}
	reqs, err := h.uc.List(c.Context(), status, branchID)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.ExtraOrderResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, dto.FromExtraOrder(r))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido extra por ID
// @Tags         extra-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ExtraOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/extra-orders/{id} [get]
func (h *ExtraOrderHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if GetRole(c) == entity.RoleBRANCH && req.BranchID != GetBranchID(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	}
	return c.JSON(dto.FromExtraOrder(req))
}
