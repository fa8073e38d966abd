package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
	"github.com/tu-usuario/ferreteria-api/internal/domain/repository"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

// UseCase es el almacén de catálogo: dueño exclusivo de Product y Category.
// Toda mutación pasa por una transacción con rollback automático; los
// invariantes (stock >= 0, precio >= 0, código único, categoría existente)
// se validan aquí antes de tocar el almacén.
type UseCase struct {
	txRunner   TxRunner
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		products:   products,
		categories: categories,
	}
}

// UpsertInput entrada para crear o actualizar un producto.
// UpdateIntent autoriza sobrescribir un producto existente con el mismo
// código cuando el nombre o la categoría difieren (colisión ambigua).
type UpsertInput struct {
	Code         string
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	MinStock     int
	Unit         string
	CategoryID   string
	Brand        string
	Location     string
	UpdateIntent bool
}

// validate aplica los invariantes de entrada. Los nombres de campo usan las
// etiquetas en español que la capa de presentación y el importador muestran.
func (in *UpsertInput) validate() error {
	if in.Name == "" {
		return domain.NewValidationError("Nombre", "", "no puede estar vacío")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("Precio", in.Price.String(), "no puede ser negativo")
	}
	if in.Stock < 0 {
		return domain.NewValidationError("Stock", "", "no puede ser negativo")
	}
	if in.MinStock < 0 {
		return domain.NewValidationError("Stock Mínimo", "", "no puede ser negativo")
	}
	if in.Unit == "" {
		return domain.NewValidationError("Unidad", "", "no puede estar vacía")
	}
	if in.CategoryID == "" {
		return domain.NewValidationError("Categoría", "", "es obligatoria")
	}
	return nil
}

// UpsertProduct valida la entrada y crea o actualiza el producto dentro de
// una transacción. Si Code está presente y coincide con un producto
// existente, actualiza esa fila preservando su ID; una colisión con distinta
// combinación nombre/categoría sin UpdateIntent es ConflictError.
// Devuelve el producto resultante y si fue creado (true) o actualizado.
func (uc *UseCase) UpsertProduct(ctx context.Context, in UpsertInput) (*entity.Product, bool, error) {
	in.Name = trimmed(in.Name)
	in.Unit = trimmed(in.Unit)
	in.Code = normalizeCode(in.Code)

	if err := in.validate(); err != nil {
		return nil, false, err
	}

	var (
		out     *entity.Product
		created bool
	)
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		categories repository.CategoryRepository,
	) error {
		cat, err := categories.GetByID(in.CategoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.NewValidationError("Categoría", in.CategoryID, "categoría desconocida")
		}

		var existing *entity.Product
		if in.Code != "" {
			existing, err = products.GetByCode(in.Code)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		if existing != nil {
			sameIdentity := textutil.EqualFold(existing.Name, in.Name) && existing.CategoryID == in.CategoryID
			if !sameIdentity && !in.UpdateIntent {
				return &domain.ConflictError{
					Code:       in.Code,
					ExistingID: existing.ID,
					Reason:     "distinta combinación nombre/categoría; requiere confirmación explícita",
				}
			}
			existing.Name = in.Name
			existing.Description = in.Description
			existing.Price = in.Price
			existing.Stock = in.Stock
			existing.MinStock = in.MinStock
			existing.Unit = in.Unit
			existing.CategoryID = in.CategoryID
			existing.Brand = trimmed(in.Brand)
			existing.Location = trimmed(in.Location)
			existing.Active = true
			existing.UpdatedAt = now
			if err := products.Update(existing); err != nil {
				return err
			}
			out = existing
			return nil
		}

		p := &entity.Product{
			ID:          uuid.New().String(),
			Code:        in.Code,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			MinStock:    in.MinStock,
			Unit:        in.Unit,
			CategoryID:  in.CategoryID,
			Brand:       trimmed(in.Brand),
			Location:    trimmed(in.Location),
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := products.Create(p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// Carrera sobre el código único: otro flujo insertó el mismo código.
				return &domain.ConflictError{Code: in.Code, Reason: "código duplicado"}
			}
			return err
		}
		out = p
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// GetOrCreateCategory busca la categoría por nombre plegado (recortado, sin
// distinguir mayúsculas ni acentos) y la crea si no existe. La descripción
// solo aplica al crear; una categoría existente conserva la suya. La creación
// es visible para llamadas posteriores dentro del mismo lote.
func (uc *UseCase) GetOrCreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	name = trimmed(name)
	if name == "" {
		return nil, domain.NewValidationError("Categoría", "", "no puede estar vacía")
	}
	existing, err := uc.categories.GetByNameFold(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: trimmed(description),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(cat); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Carrera: otro flujo la creó entre el lookup y el insert.
			return uc.categories.GetByNameFold(name)
		}
		return nil, err
	}
	return cat, nil
}

// FindProduct busca por ID y luego por código. Solo consulta por ID cuando
// el parámetro es un uuid válido: la columna id es uuid y el cast de un
// código como "TRN-001" fallaría en el almacén en lugar de devolver
// no-encontrado. Devuelve domain.ErrNotFound si no existe.
func (uc *UseCase) FindProduct(ctx context.Context, idOrCode string) (*entity.Product, error) {
	var p *entity.Product
	if uuid.Validate(idOrCode) == nil {
		var err error
		p, err = uc.products.GetByID(idOrCode)
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		var err error
		p, err = uc.products.GetByCode(normalizeCode(idOrCode))
		if err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// AdjustStock aplica un delta al stock bajo bloqueo de fila (SELECT FOR
// UPDATE) dentro de una transacción. Es la única vía sancionada de mutación
// de stock fuera de la importación. Un resultado negativo es
// InvariantViolation y no muta nada.
func (uc *UseCase) AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		_ repository.CategoryRepository,
	) error {
		p, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		newStock := p.Stock + delta
		if newStock < 0 {
			return &domain.InvariantViolation{
				ProductID: id,
				Stock:     p.Stock,
				Delta:     delta,
				Reason:    "el ajuste dejaría stock negativo",
			}
		}
		if err := products.UpdateStock(id, newStock); err != nil {
			return err
		}
		p.Stock = newStock
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListLowStock devuelve los productos con stock <= min_stock.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.products.ListLowStock(ctx)
}

// ListSummaries devuelve la proyección producto + categoría de todo el
// catálogo activo, para el constructor de contexto del asistente.
func (uc *UseCase) ListSummaries(ctx context.Context) ([]repository.ProductSummary, error) {
	return uc.products.ListSummaries(ctx)
}

// List lista productos activos con paginación.
func (uc *UseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.products.List(limit, offset)
}

// DeactivateProduct da de baja lógica un producto.
func (uc *UseCase) DeactivateProduct(ctx context.Context, id string) error {
	p, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.products.Deactivate(id)
}

// ListCategories lista todas las categorías.
func (uc *UseCase) ListCategories() ([]*entity.Category, error) {
	return uc.categories.List()
}

// DeactivateCategory desactiva una categoría (las referenciadas por
// productos nunca se eliminan físicamente).
func (uc *UseCase) DeactivateCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categories.Deactivate(id)
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Unit:        p.Unit,
		CategoryID:  p.CategoryID,
		Brand:       p.Brand,
		Location:    p.Location,
		Active:      p.Active,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
