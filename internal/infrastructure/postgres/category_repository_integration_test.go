//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/category-api/internal/domain/entity"
	"github.com/jhoicas/category-api/internal/domain/hierarchy"
	"github.com/jhoicas/category-api/internal/domain/repository"
)

// Ejecutar con: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE categories`)
	require.NoError(t, err)
	return pool
}

func newPgCategory(name string, parent *entity.ID, at time.Time) *entity.Category {
	return &entity.Category{ID: uuid.New(), Name: name, ParentID: parent, CreatedAt: at, UpdatedAt: at}
}

func TestCategoryRepo_Integration_CRUD(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCategoryRepository(pool)

	base := time.Now().UTC().Truncate(time.Microsecond)
	root := newPgCategory("Electronics", nil, base)
	phones := newPgCategory("Phones", &root.ID, base.Add(time.Second))
	laptops := newPgCategory("Laptops", &root.ID, base.Add(2*time.Second))
	other := newPgCategory("   ", nil, base.Add(3*time.Second))
	for _, c := range []*entity.Category{root, phones, laptops, other} {
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.GetByID(ctx, phones.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, root.ID, *got.ParentID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	roots, err := repo.ListByParent(ctx, nil)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, root.ID, roots[0].ID)
	assert.Equal(t, "   ", roots[1].Name, "el nombre se guarda tal cual")

	children, err := repo.ListByParent(ctx, &root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "Phones", children[0].Name)
	assert.Equal(t, "Laptops", children[1].Name)

	changed := &entity.Category{ID: laptops.ID, Name: "Notebooks", UpdatedAt: base.Add(time.Hour)}
	ok, err := repo.Update(ctx, changed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, changed.CreatedAt.Equal(laptops.CreatedAt), "RETURNING created_at")

	ok, err = repo.Update(ctx, newPgCategory("ghost", nil, base))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := repo.DeleteByIDs(ctx, []entity.ID{root.ID, phones.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTxRunner_Integration_RollbackYCascada(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewCategoryRepository(pool)
	runner, err := NewTxRunner(pool, "serializable")
	require.NoError(t, err)

	now := time.Now().UTC()
	a := newPgCategory("a", nil, now)
	b := newPgCategory("b", &a.ID, now.Add(time.Millisecond))
	c := newPgCategory("c", &b.ID, now.Add(2*time.Millisecond))
	for _, cat := range []*entity.Category{a, b, c} {
		require.NoError(t, repo.Create(ctx, cat))
	}

	boom := errors.New("boom")
	err = runner.Run(ctx, func(tx repository.CategoryRepository) error {
		_, err := tx.DeleteByIDs(ctx, []entity.ID{a.ID})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	kept, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "rollback")

	var deleted int64
	err = runner.Run(ctx, func(tx repository.CategoryRepository) error {
		ids, err := hierarchy.Descendants(ctx, tx, a.ID)
		if err != nil {
			return err
		}
		deleted, err = tx.DeleteByIDs(ctx, append(ids, a.ID))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&count))
	assert.Zero(t, count)

	_, err = pool.Exec(ctx, `SELECT 1 FROM categories WHERE id = $1::text::uuid`, "not-a-uuid")
	require.Error(t, err)
	assert.True(t, isInvalidTextRepresentation(err))
	assert.False(t, errors.Is(err, pgx.ErrNoRows))
}
