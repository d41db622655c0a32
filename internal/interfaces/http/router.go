package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/category-api/internal/application/usecase"
	"github.com/jhoicas/category-api/pkg/logger"
	"github.com/jhoicas/category-api/pkg/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	Validator  *validation.Validator
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Validator, deps.Logger)
	categories.Post("/create", categoryHandler.Create)
	categories.Put("/update/:id", categoryHandler.Update)
	categories.Delete("/delete/:id", categoryHandler.Delete)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
}
