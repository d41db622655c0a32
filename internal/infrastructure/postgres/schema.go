package postgres

import (
	"context"
	"fmt"
)

// Sin FOREIGN KEY sobre parent_id: un padre inexistente se acepta y el borrado en
// cascada lo resuelve la aplicación.
const categoriesSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL CHECK (name <> ''),
	parent_id  UUID NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_categories_parent_id ON categories (parent_id);`

// EnsureSchema crea la tabla de categorías y sus índices si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, categoriesSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
