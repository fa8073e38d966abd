package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, price, stock, min_stock, unit, category_id, brand, location, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// La tabla products tiene UNIQUE(code) WHERE code <> '' y CHECK (stock >= 0 AND price >= 0).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Stock, &p.MinStock,
		&p.Unit, &p.CategoryID, &p.Brand, &p.Location, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.Price,
		product.Stock, product.MinStock, product.Unit, product.CategoryID,
		product.Brand, product.Location, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("category_id", product.CategoryID, "categoría inexistente")
		}
		if isCheckViolation(err) {
			return &domain.InvariantViolation{ProductID: product.ID, Stock: product.Stock, Reason: "stock o precio negativo"}
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE code = $1 AND code <> ''`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
// Usar solo dentro de una transacción (TxRunner).
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// Update sobrescribe todos los campos mutables del producto (incluye stock:
// la vía de importación reescribe campos completos; el ajuste incremental
// usa UpdateStock bajo bloqueo de fila).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, price = $5, stock = $6,
			min_stock = $7, unit = $8, category_id = $9, brand = $10, location = $11,
			active = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.Price,
		product.Stock, product.MinStock, product.Unit, product.CategoryID,
		product.Brand, product.Location, product.Active, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("category_id", product.CategoryID, "categoría inexistente")
		}
		if isCheckViolation(err) {
			return &domain.InvariantViolation{ProductID: product.ID, Stock: product.Stock, Reason: "stock o precio negativo"}
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock del producto. El caller debe haber validado el
// invariante stock >= 0 bajo GetForUpdate; el CHECK del esquema es la última línea.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		if isCheckViolation(err) {
			return &domain.InvariantViolation{ProductID: id, Stock: stock, Reason: "stock negativo"}
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List lista productos activos con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE active ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Stock, &p.MinStock,
			&p.Unit, &p.CategoryID, &p.Brand, &p.Location, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListLowStock devuelve los productos activos con stock en o bajo su mínimo,
// ordenados por déficit: agotados primero, luego menor stock, luego nombre.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE active AND stock <= min_stock
		ORDER BY stock ASC, name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Stock, &p.MinStock,
			&p.Unit, &p.CategoryID, &p.Brand, &p.Location, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListSummaries devuelve todos los productos activos con el nombre de su
// categoría, para el constructor de contexto del asistente. Siempre relee el
// almacén: los componentes no cachean estado a través de mutaciones.
func (r *ProductRepo) ListSummaries(ctx context.Context) ([]repository.ProductSummary, error) {
	query := `
		SELECT p.id, p.code, p.name, c.name, p.price, p.stock, p.min_stock, p.unit
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.active
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list product summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductSummary
	for rows.Next() {
		var s repository.ProductSummary
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.CategoryName, &s.Price, &s.Stock, &s.MinStock, &s.Unit); err != nil {
			return nil, fmt.Errorf("scan product summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Deactivate marca el producto como inactivo (baja lógica).
func (r *ProductRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}
