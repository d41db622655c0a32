package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jhoicas/category-api/internal/domain/entity"
	"github.com/jhoicas/category-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, parent_id, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. El padre no se valida contra la tabla.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		toPgUUID(&category.ID), category.Name, toPgUUID(category.ParentID),
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, toPgUUID(&id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get category", err)
	}
	return c, nil
}

// ListByParent lista los hijos directos de parentID; con nil lista las raíces.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error) {
	if parentID == nil {
		return r.list(ctx, "list root categories",
			`SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL ORDER BY created_at, id`)
	}
	return r.list(ctx, "list child categories",
		`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY created_at, id`,
		toPgUUID(parentID))
}

// List devuelve la instantánea completa de categorías.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	return r.list(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories ORDER BY created_at, id`)
}

// Update sobrescribe nombre y padre de una categoría existente.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) (bool, error) {
	query := `
		UPDATE categories SET name = $2, parent_id = $3, updated_at = $4
		WHERE id = $1
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		toPgUUID(&category.ID), category.Name, toPgUUID(category.ParentID), category.UpdatedAt,
	).Scan(&category.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, wrapErr("update category", err)
	}
	return true, nil
}

// DeleteByIDs elimina en una sola sentencia todas las categorías indicadas.
func (r *CategoryRepo) DeleteByIDs(ctx context.Context, ids []entity.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	params := make([]pgtype.UUID, 0, len(ids))
	for i := range ids {
		params = append(params, toPgUUID(&ids[i]))
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = ANY($1)`, params)
	if err != nil {
		return 0, wrapErr("delete categories", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *CategoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrapErr("scan category", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var (
		c        entity.Category
		id       pgtype.UUID
		parentID pgtype.UUID
	)
	if err := row.Scan(&id, &c.Name, &parentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = *fromPgUUID(id)
	c.ParentID = fromPgUUID(parentID)
	return &c, nil
}
