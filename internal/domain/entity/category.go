package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/category-api/internal/domain"
)

// ID identificador canónico de una categoría. La igualdad es la de uuid.UUID,
// nunca la de su representación textual.
type ID = uuid.UUID

// NewID genera un identificador nuevo.
func NewID() ID {
	return uuid.New()
}

// ParseID valida el formato de un identificador recibido como texto.
func ParseID(s string) (ID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", domain.ErrMalformedReference, s, err)
	}
	return id, nil
}

// ParseParentID interpreta la referencia al padre: vacío significa raíz (nil).
func ParseParentID(s *string) (*ID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := ParseID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Category representa un nodo de la jerarquía de categorías (profundidad arbitraria).
type Category struct {
	ID        ID
	Name      string
	ParentID  *ID // nil si es raíz
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// HasParent indica si el padre de la categoría es exactamente id.
func (c *Category) HasParent(id ID) bool {
	return c.ParentID != nil && *c.ParentID == id
}
