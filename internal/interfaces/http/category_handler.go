package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/category-api/internal/application/dto"
	"github.com/jhoicas/category-api/internal/application/usecase"
	"github.com/jhoicas/category-api/internal/domain"
	"github.com/jhoicas/category-api/pkg/logger"
	"github.com/jhoicas/category-api/pkg/validation"
)

// Mensajes de respuesta de la API de categorías.
const (
	MsgCreateNameRequired = "Please add category name in the request body."
	MsgUpdateNameRequired = "Please add updated name in the request body."
	MsgCircularReference  = "Circular reference not allowed"
	MsgCreated            = "Category created successfully"
	MsgUpdated            = "Category updated successfully"
	MsgDeleted            = "Category / subcategories deleted successfully"
	MsgNotFound           = "Category not found"
	MsgCycleDetected      = "Category hierarchy contains a cycle"
	MsgInvalidBody        = "Invalid request body"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc       *usecase.CategoryUseCase
	validate *validation.Validator
	log      *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, validate *validation.Validator, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, validate: validate, log: log}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre y padre opcional"
// @Success      201   {object}  dto.CategoryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/categories/create [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := h.parseBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: MsgInvalidBody})
	}
	if err := h.validate.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: MsgCreateNameRequired})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err, MsgCreateNameRequired)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryMutationResponse{Message: MsgCreated, Category: out})
}

// Update godoc
// @Summary      Actualizar categoría (nombre y padre)
// @Description  Un parent ausente o null deja la categoría como raíz.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Nombre y padre"
// @Success      200   {object}  dto.CategoryMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/categories/update/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateCategoryRequest
	if err := h.parseBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: MsgInvalidBody})
	}
	if err := h.validate.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: MsgUpdateNameRequired})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err, MsgUpdateNameRequired)
	}
	return c.JSON(dto.CategoryMutationResponse{Message: MsgUpdated, Category: out})
}

// Delete godoc
// @Summary      Eliminar categoría y todas sus subcategorías
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryDeleteResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/delete/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(dto.CategoryDeleteResponse{Message: MsgDeleted, Result: *out})
}

// Tree godoc
// @Summary      Árbol de categorías
// @Description  Bosque anidado a partir de las categorías raíz. format=xml devuelve XML.
// @Tags         categories
// @Produce      json
// @Produce      xml
// @Param        format  query  string  false  "json (default) o xml"
// @Success      200  {array}   dto.CategoryTreeNode
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/tree [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	if c.Query("format") == "xml" {
		body, contentType, err := h.uc.ExportTree(c.UserContext())
		if err != nil {
			return h.fail(c, err, "")
		}
		c.Set(fiber.HeaderContentType, contentType)
		return c.Send(body)
	}
	out, err := h.uc.Tree(c.UserContext())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar categorías (plano, sin paginación)
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/ [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: MsgNotFound})
	}
	return c.JSON(out)
}

// parseBody acepta cuerpo vacío: la validación reporta los campos faltantes.
func (h *CategoryHandler) parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// fail traduce errores de dominio a respuestas HTTP. Lo no reconocido es 500 con el texto del error.
func (h *CategoryHandler) fail(c *fiber.Ctx, err error, validationMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput) && validationMsg != "":
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMsg})
	case errors.Is(err, domain.ErrSelfParent):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CIRCULAR_REFERENCE", Message: MsgCircularReference})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: MsgNotFound})
	case errors.Is(err, domain.ErrCycleDetected):
		h.log.Warn().Err(err).Str("path", c.Path()).Msg("jerarquía con ciclo")
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CYCLE_DETECTED", Message: MsgCycleDetected + ": " + err.Error()})
	}
	h.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en operación de categorías")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
