// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa en tests y con STORE_DRIVER=memory para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/category-api/internal/domain/entity"
	"github.com/jhoicas/category-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.CategoryRepository = lockedRepo{}
)

// CategoryRepo guarda las categorías en orden de inserción.
type CategoryRepo struct {
	mu    sync.RWMutex
	order []entity.ID
	byID  map[entity.ID]entity.Category
}

// NewCategoryRepository construye un repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{byID: make(map[entity.ID]entity.Category)}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(ctx, category)
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getByID(ctx, id)
}

// ListByParent lista los hijos directos de parentID (nil = raíces).
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listByParent(ctx, parentID)
}

// List devuelve todas las categorías en orden de inserción.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(ctx)
}

// Update sobrescribe nombre, padre y fecha de actualización.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(ctx, category)
}

// DeleteByIDs elimina en una sola operación todas las categorías indicadas.
func (r *CategoryRepo) DeleteByIDs(ctx context.Context, ids []entity.ID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteByIDs(ctx, ids)
}

// Los métodos en minúscula asumen que el llamador ya tiene r.mu.

func (r *CategoryRepo) create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.byID[category.ID]; !ok {
		r.order = append(r.order, category.ID)
	}
	r.byID[category.ID] = clone(category)
	return nil
}

func (r *CategoryRepo) getByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return ptr(c), nil
}

func (r *CategoryRepo) listByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0)
	for _, id := range r.order {
		c := r.byID[id]
		switch {
		case parentID == nil && c.ParentID == nil:
		case parentID != nil && c.HasParent(*parentID):
		default:
			continue
		}
		list = append(list, ptr(c))
	}
	return list, nil
}

func (r *CategoryRepo) list(ctx context.Context) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, ptr(r.byID[id]))
	}
	return list, nil
}

func (r *CategoryRepo) update(ctx context.Context, category *entity.Category) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	current, ok := r.byID[category.ID]
	if !ok {
		return false, nil
	}
	category.CreatedAt = current.CreatedAt
	r.byID[category.ID] = clone(category)
	return true, nil
}

func (r *CategoryRepo) deleteByIDs(ctx context.Context, ids []entity.ID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var deleted int64
	for _, id := range ids {
		if _, ok := r.byID[id]; ok {
			delete(r.byID, id)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}
	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.byID[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept
	return deleted, nil
}

// lockedRepo es la vista del repositorio dentro de TxRunner.Run, con el lock de escritura ya tomado.
type lockedRepo struct {
	r *CategoryRepo
}

func (l lockedRepo) Create(ctx context.Context, category *entity.Category) error {
	return l.r.create(ctx, category)
}

func (l lockedRepo) GetByID(ctx context.Context, id entity.ID) (*entity.Category, error) {
	return l.r.getByID(ctx, id)
}

func (l lockedRepo) ListByParent(ctx context.Context, parentID *entity.ID) ([]*entity.Category, error) {
	return l.r.listByParent(ctx, parentID)
}

func (l lockedRepo) List(ctx context.Context) ([]*entity.Category, error) {
	return l.r.list(ctx)
}

func (l lockedRepo) Update(ctx context.Context, category *entity.Category) (bool, error) {
	return l.r.update(ctx, category)
}

func (l lockedRepo) DeleteByIDs(ctx context.Context, ids []entity.ID) (int64, error) {
	return l.r.deleteByIDs(ctx, ids)
}

// clone copia la categoría sin compartir el puntero al padre.
func clone(c *entity.Category) entity.Category {
	out := *c
	if c.ParentID != nil {
		p := *c.ParentID
		out.ParentID = &p
	}
	return out
}

func ptr(c entity.Category) *entity.Category {
	out := clone(&c)
	return &out
}
