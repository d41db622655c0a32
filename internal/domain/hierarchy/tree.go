package hierarchy

import (
	"fmt"

	"github.com/jhoicas/category-api/internal/domain"
	"github.com/jhoicas/category-api/internal/domain/entity"
)

// Node es una categoría con sus hijos directos ya resueltos.
type Node struct {
	Category *entity.Category
	Children []*Node
}

// BuildTree arma el bosque anidado a partir de una instantánea completa y sin
// orden de categorías. Las raíces son los registros sin padre; entre hermanos
// se conserva el orden de la instantánea. Un registro cuyo padre no existe no
// es alcanzable desde ninguna raíz y queda fuera del resultado.
func BuildTree(records []*entity.Category) ([]*Node, error) {
	var roots []*entity.Category
	byParent := make(map[entity.ID][]*entity.Category, len(records))
	for _, c := range records {
		if c.IsRoot() {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	visited := make(map[entity.ID]struct{}, len(records))
	return build(roots, byParent, visited)
}

func build(level []*entity.Category, byParent map[entity.ID][]*entity.Category, visited map[entity.ID]struct{}) ([]*Node, error) {
	nodes := make([]*Node, 0, len(level))
	for _, c := range level {
		if _, seen := visited[c.ID]; seen {
			return nil, fmt.Errorf("%w: %s", domain.ErrCycleDetected, c.ID)
		}
		visited[c.ID] = struct{}{}
		children, err := build(byParent[c.ID], byParent, visited)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Node{Category: c, Children: children})
	}
	return nodes, nil
}

