package usecase

import (
	"context"

	"github.com/jhoicas/category-api/internal/domain/hierarchy"
	"github.com/jhoicas/category-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando el
// repositorio atado a esa transacción. Lo usa el borrado en cascada.
type TxRunner interface {
	Run(ctx context.Context, fn func(categoryRepo repository.CategoryRepository) error) error
}

// TreeExporter serializa el bosque de categorías a un formato externo (XML).
type TreeExporter interface {
	Export(forest []*hierarchy.Node) ([]byte, error)
	ContentType() string
}
