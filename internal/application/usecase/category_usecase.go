package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/category-api/internal/application/dto"
	"github.com/jhoicas/category-api/internal/domain"
	"github.com/jhoicas/category-api/internal/domain/entity"
	"github.com/jhoicas/category-api/internal/domain/hierarchy"
	"github.com/jhoicas/category-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de la jerarquía de categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	tx       TxRunner
	exporter TreeExporter
	now      func() time.Time
}

// NewCategoryUseCase construye el caso de uso. exporter puede ser nil si no se exporta el árbol.
func NewCategoryUseCase(repo repository.CategoryRepository, tx TxRunner, exporter TreeExporter) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tx: tx, exporter: exporter, now: time.Now}
}

// Create crea una categoría. El padre se valida en formato pero no en existencia.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	parentID, err := entity.ParseParentID(in.Parent)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	category := &entity.Category{
		ID:        entity.NewID(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	categoryID, err := entity.ParseID(id)
	if err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update reemplaza nombre y padre. Un padre ausente deja la categoría como raíz.
// Devuelve domain.ErrSelfParent si el padre es la propia categoría y
// domain.ErrNotFound si no existe.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Parent != nil && *in.Parent == id {
		return nil, domain.ErrSelfParent
	}
	categoryID, err := entity.ParseID(id)
	if err != nil {
		return nil, err
	}
	parentID, err := entity.ParseParentID(in.Parent)
	if err != nil {
		return nil, err
	}
	if parentID != nil && *parentID == categoryID {
		return nil, domain.ErrSelfParent
	}
	category := &entity.Category{
		ID:        categoryID,
		Name:      name,
		ParentID:  parentID,
		UpdatedAt: uc.now(),
	}
	found, err := uc.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría y todos sus descendientes en una sola operación del store.
// Los descendientes se resuelven por enlace al padre, aunque la categoría ya no exista.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (*dto.DeleteResult, error) {
	categoryID, err := entity.ParseID(id)
	if err != nil {
		return nil, err
	}
	var deleted int64
	err = uc.tx.Run(ctx, func(repo repository.CategoryRepository) error {
		ids, err := hierarchy.Descendants(ctx, repo, categoryID)
		if err != nil {
			return err
		}
		ids = append(ids, categoryID)
		deleted, err = repo.DeleteByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResult{DeletedCount: deleted}, nil
}

// List devuelve todas las categorías sin filtrar ni paginar.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Tree devuelve el bosque de categorías a partir de una sola lectura completa del store.
func (uc *CategoryUseCase) Tree(ctx context.Context) ([]dto.CategoryTreeNode, error) {
	forest, err := uc.forest(ctx)
	if err != nil {
		return nil, err
	}
	return toTreeNodes(forest), nil
}

// ExportTree serializa el bosque con el exportador configurado.
// Devuelve el contenido y su content type.
func (uc *CategoryUseCase) ExportTree(ctx context.Context) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", domain.ErrInvalidInput
	}
	forest, err := uc.forest(ctx)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.Export(forest)
	if err != nil {
		return nil, "", err
	}
	return out, uc.exporter.ContentType(), nil
}

func (uc *CategoryUseCase) forest(ctx context.Context) ([]*hierarchy.Node, error) {
	snapshot, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return hierarchy.BuildTree(snapshot)
}

// requireName exige un nombre no vacío; se guarda tal cual llega.
func requireName(name string) (string, error) {
	if name == "" {
		return "", domain.ErrInvalidInput
	}
	return name, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	out := &dto.CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		out.Parent = &parent
	}
	return out
}

func toTreeNodes(nodes []*hierarchy.Node) []dto.CategoryTreeNode {
	out := make([]dto.CategoryTreeNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dto.CategoryTreeNode{
			CategoryResponse: *toCategoryResponse(n.Category),
			Children:         toTreeNodes(n.Children),
		})
	}
	return out
}
