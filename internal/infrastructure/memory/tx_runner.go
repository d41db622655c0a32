package memory

import (
	"context"

	"github.com/jhoicas/category-api/internal/domain/repository"
)

// TxRunner ejecuta fn con el lock de escritura del repositorio tomado durante toda la
// ejecución: ninguna otra llamada al repositorio avanza hasta que fn termina.
// No hay rollback: los cambios hechos antes de un error quedan aplicados.
type TxRunner struct {
	repo *CategoryRepo
}

// NewTxRunner construye el runner sobre el repositorio dado.
func NewTxRunner(repo *CategoryRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// Run ejecuta fn con una vista del repositorio que no vuelve a tomar el lock.
func (r *TxRunner) Run(ctx context.Context, fn func(categoryRepo repository.CategoryRepository) error) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(lockedRepo{r: r.repo})
}
