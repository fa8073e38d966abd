package repository

import "github.com/tu-usuario/ferreteria-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByNameFold busca por nombre plegado: sin mayúsculas ni acentos.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByNameFold(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Deactivate(id string) error
}
