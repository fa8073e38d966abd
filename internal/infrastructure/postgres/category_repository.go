package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
// La tabla categories tiene UNIQUE(name_fold): la unicidad del nombre no
// distingue mayúsculas ni acentos a nivel de esquema. La columna name_fold
// la escribe este adaptador, siempre con textutil.Fold.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, name_fold, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, textutil.Fold(category.Name),
		category.Description, category.Active,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByNameFold busca una categoría por nombre sin distinguir mayúsculas ni
// acentos. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByNameFold(name string) (*entity.Category, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM categories WHERE name_fold = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, textutil.Fold(name)).Scan(
		&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// List lista todas las categorías, activas primero.
func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM categories ORDER BY active DESC, name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Deactivate marca la categoría como inactiva. Las categorías referenciadas
// por productos nunca se eliminan físicamente.
func (r *CategoryRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	return nil
}
