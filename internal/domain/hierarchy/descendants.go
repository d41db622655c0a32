// Package hierarchy contiene la lógica de árbol sobre categorías: resolución
// de descendientes (borrado en cascada) y ensamblado del árbol anidado.
package hierarchy

import (
	"context"
	"fmt"

	"github.com/jhoicas/category-api/internal/domain"
	"github.com/jhoicas/category-api/internal/domain/entity"
)

// ChildLister es la parte del repositorio que necesita Descendants.
type ChildLister interface {
	ListByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error)
}

// Descendants devuelve los IDs de todos los descendientes estrictos de id,
// siguiendo los enlaces parent hacia abajo. Cada rama aparece padre antes que
// descendientes. Hace una consulta al store por nodo visitado.
// Si un nodo se visita dos veces la jerarquía contiene un ciclo y se devuelve
// domain.ErrCycleDetected.
func Descendants(ctx context.Context, store ChildLister, id entity.ID) ([]entity.ID, error) {
	visited := map[entity.ID]struct{}{id: {}}
	var out []entity.ID
	if err := collect(ctx, store, id, visited, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collect(ctx context.Context, store ChildLister, parent entity.ID, visited map[entity.ID]struct{}, out *[]entity.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	children, err := store.ListByParent(ctx, &parent)
	if err != nil {
		return fmt.Errorf("list children of %s: %w", parent, err)
	}
	for _, child := range children {
		if _, seen := visited[child.ID]; seen {
			return fmt.Errorf("%w: %s", domain.ErrCycleDetected, child.ID)
		}
		visited[child.ID] = struct{}{}
		*out = append(*out, child.ID)
		if err := collect(ctx, store, child.ID, visited, out); err != nil {
			return err
		}
	}
	return nil
}
