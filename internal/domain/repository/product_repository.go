package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
)

// ProductSummary es la proyección producto + nombre de categoría que consume
// el constructor de contexto del asistente.
type ProductSummary struct {
	ID           string
	Code         string
	Name         string
	CategoryName string
	Price        decimal.Decimal
	Stock        int
	MinStock     int
	Unit         string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción (SELECT FOR UPDATE).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	ListSummaries(ctx context.Context) ([]ProductSummary, error)
	Deactivate(id string) error
}
