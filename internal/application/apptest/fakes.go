// Package apptest provee dobles en memoria de los puertos de persistencia
// para las pruebas de la capa de aplicación.
package apptest

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

// ─────────────────────────────────────────────
// ProductRepo en memoria
// ─────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository sobre un mapa.
type ProductRepo struct {
	byID map[string]*entity.Product
	// FailWith fuerza el error dado en toda operación (simula almacén caído).
	FailWith error
	// StrictIDs imita la columna id uuid del esquema real: consultar por un
	// id que no es uuid es un error de codec, nunca (nil, nil).
	StrictIDs bool
}

var _ repository.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo() *ProductRepo {
	return &ProductRepo{byID: make(map[string]*entity.Product)}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	if p.Code != "" {
		for _, other := range r.byID {
			if other.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	if r.StrictIDs {
		if err := uuid.Validate(id); err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
	}
	p, ok := r.byID[id]
	if !ok || !p.Active {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	if code == "" {
		return nil, nil
	}
	for _, p := range r.byID {
		if p.Active && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) Update(p *entity.Product) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(id string, stock int) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	all := r.sortedActive()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var out []*entity.Product
	for _, p := range r.sortedActive() {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ProductRepo) ListSummaries(ctx context.Context) ([]repository.ProductSummary, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	// El nombre de categoría se resuelve con el ID; suficiente para pruebas.
	var out []repository.ProductSummary
	for _, p := range r.sortedActive() {
		out = append(out, repository.ProductSummary{
			ID:           p.ID,
			Code:         p.Code,
			Name:         p.Name,
			CategoryName: p.CategoryID,
			Price:        p.Price,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
		})
	}
	return out, nil
}

func (r *ProductRepo) Deactivate(id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}

func (r *ProductRepo) sortedActive() []*entity.Product {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ─────────────────────────────────────────────
// CategoryRepo en memoria
// ─────────────────────────────────────────────

// CategoryRepo implementa repository.CategoryRepository sobre un mapa.
type CategoryRepo struct {
	byID     map[string]*entity.Category
	FailWith error
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{byID: make(map[string]*entity.Category)}
}

func (r *CategoryRepo) Create(c *entity.Category) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	for _, other := range r.byID {
		if textutil.EqualFold(other.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	c, ok := r.byID[id]
	if !ok || !c.Active {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) GetByNameFold(name string) (*entity.Category, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	for _, c := range r.byID {
		if c.Active && textutil.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var out []*entity.Category
	for _, c := range r.byID {
		if c.Active {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Deactivate(id string) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Active = false
	return nil
}

// ─────────────────────────────────────────────
// TxRunner en memoria
// ─────────────────────────────────────────────

// TxRunner pasa los repos en memoria a fn sin transacción real. Los dobles
// mutan en el acto, así que las pruebas de rollback usan FailWith para
// detener la operación antes de mutar.
type TxRunner struct {
	Products   *ProductRepo
	Categories *CategoryRepo
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.Products, t.Categories)
}
