package catalog

import (
	"context"

	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las mutaciones del
// catálogo: Commit si fn retorna nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		categories repository.CategoryRepository,
	) error) error
}
