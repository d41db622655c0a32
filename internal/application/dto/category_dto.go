package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. Parent nulo o ausente = raíz.
type CreateCategoryRequest struct {
	Name   string  `json:"name" validate:"required"`
	Parent *string `json:"parent"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
// Parent ausente se trata como null: la categoría pasa a ser raíz.
type UpdateCategoryRequest struct {
	Name   string  `json:"name" validate:"required"`
	Parent *string `json:"parent"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Parent    *string   `json:"parent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTreeNode categoría con sus hijos directos anidados.
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// CategoryMutationResponse respuesta de creación y actualización.
type CategoryMutationResponse struct {
	Message  string            `json:"message"`
	Category *CategoryResponse `json:"category"`
}

// DeleteResult cantidad de registros eliminados por un borrado en cascada.
type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// CategoryDeleteResponse respuesta del borrado.
type CategoryDeleteResponse struct {
	Message string       `json:"message"`
	Result  DeleteResult `json:"result"`
}
