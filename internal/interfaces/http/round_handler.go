package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/dto"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
)

// RoundHandler maneja las peticiones HTTP de rounds de asignación (protegido).
type RoundHandler struct {
	uc *usecase.RoundUseCase
}

// NewRoundHandler construye el handler.
func NewRoundHandler(uc *usecase.RoundUseCase) *RoundHandler {
	return &RoundHandler{uc: uc}
}

func roundInputFromRequest(in dto.RoundRequest) (usecase.RoundInput, error) {
	orderDate, err := dto.ParseDate(in.OrderDate)
	if err != nil || orderDate == nil {
		return usecase.RoundInput{}, errInvalidDate
	}
	input := usecase.RoundInput{
		RoundNo:   in.RoundNo,
		OrderDate: *orderDate,
		Memo:      in.Memo,
	}
	for _, it := range in.Items {
		input.Items = append(input.Items, usecase.RoundItemInput{
			BranchID:  it.BranchID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return input, nil
}

// Create godoc
// @Summary      Crear round de asignación
// @Tags         rounds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoundRequest  true  "round_no, order_date (YYYY-MM-DD), items"
// @Success      201   {object}  dto.RoundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/rounds [post]
func (h *RoundHandler) Create(c *fiber.Ctx) error {
	var in dto.RoundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input, err := roundInputFromRequest(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_date inválido (YYYY-MM-DD)"})
	}
	round, err := h.uc.Create(c.Context(), input, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromRound(round))
}

// Update godoc
// @Summary      Reemplazar round (cabecera e items)
// @Tags         rounds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del round"
// @Param        body  body  dto.RoundRequest true  "el set de items sustituye al anterior"
// @Success      200   {object}  dto.RoundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rounds/{id} [put]
func (h *RoundHandler) Update(c *fiber.Ctx) error {
	var in dto.RoundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input, err := roundInputFromRequest(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_date inválido (YYYY-MM-DD)"})
	}
	round, err := h.uc.Update(c.Context(), c.Params("id"), input, GetUserID(c))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRound(round))
}

// Delete godoc
// @Summary      Eliminar round
// @Tags         rounds
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del round"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rounds/{id} [delete]
func (h *RoundHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "round eliminado"})
}

// GetByID godoc
// @Summary      Obtener round por ID
// @Tags         rounds
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del round"
// @Success      200  {object}  dto.RoundResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rounds/{id} [get]
func (h *RoundHandler) GetByID(c *fiber.Ctx) error {
	round, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromRound(round))
}

// List godoc
// @Summary      Listar rounds (round_no descendente)
// @Tags         rounds
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RoundResponse
// @Router       /api/rounds [get]
func (h *RoundHandler) List(c *fiber.Ctx) error {
	rounds, err := h.uc.List(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.RoundResponse, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, dto.FromRound(r))
	}
	return c.JSON(out)
}
