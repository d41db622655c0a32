package repository

import (
	"context"

	"github.com/jhoicas/category-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id entity.ID) (*entity.Category, error)
	// ListByParent devuelve los hijos directos de parentID; nil selecciona las raíces.
	ListByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Update sobrescribe nombre y padre. Devuelve false si el registro no existe.
	Update(ctx context.Context, category *entity.Category) (bool, error)
	DeleteByIDs(ctx context.Context, ids []entity.ID) (int64, error)
}
