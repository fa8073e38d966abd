// Package importer concilia lotes tabulares (Excel, XML) contra el catálogo.
// Cada fila se procesa de forma aislada: una fila inválida se rechaza con
// motivo y fila, y el resto del lote continúa. Nunca hay compensación de
// filas ya aplicadas.
package importer

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ferreteria-api/internal/application/catalog"
	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/application/ports"
	"github.com/tu-usuario/ferreteria-api/internal/domain"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
	"github.com/tu-usuario/ferreteria-api/pkg/logger"
	"github.com/tu-usuario/ferreteria-api/pkg/textutil"
)

// Columnas reconocidas del lote. Las cinco primeras son obligatorias.
const (
	ColNombre      = "Nombre"
	ColCategoria   = "Categoría"
	ColPrecio      = "Precio"
	ColStock       = "Stock"
	ColUnidad      = "Unidad"
	ColCodigo      = "Código"
	ColStockMinimo = "Stock Mínimo"
	ColMarca       = "Marca"
	ColUbicacion   = "Ubicación"
	ColDescripcion = "Descripción"
)

var requiredColumns = []string{ColNombre, ColCategoria, ColPrecio, ColStock, ColUnidad}

// Catalogo es lo que el importador necesita del almacén de catálogo.
type Catalogo interface {
	UpsertProduct(ctx context.Context, in catalog.UpsertInput) (*entity.Product, bool, error)
	GetOrCreateCategory(ctx context.Context, name, description string) (*entity.Category, error)
}

// UseCase es el conciliador de importación.
type UseCase struct {
	catalogo Catalogo
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de importación.
func NewUseCase(catalogo Catalogo, log *logger.Logger) *UseCase {
	return &UseCase{catalogo: catalogo, log: log}
}

// Import procesa todas las filas de la fuente y devuelve el reporte del
// lote. La identidad de fila es el Código: una fila con código existente
// actualiza en lugar de duplicar (re-importar el mismo archivo es
// idempotente). Si el mismo código aparece varias veces en el lote, la
// última fila gana. Un error de infraestructura aborta el resto del lote y
// se devuelve junto con el reporte parcial; las filas ya aplicadas quedan.
func (uc *UseCase) Import(ctx context.Context, source ports.TabularSource) (*dto.ImportReport, error) {
	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.ImportReport{Total: len(rows)}
	// Cache de categorías del lote, plegadas, para no repetir lookups.
	categoryIDs := make(map[string]string)
	// Códigos ya aplicados en este lote: la siguiente aparición sobrescribe.
	seenCodes := make(map[string]bool)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		in, rej := uc.parseRow(row)
		if rej != nil {
			report.Rejected++
			report.Rejections = append(report.Rejections, *rej)
			continue
		}

		catKey := textutil.Fold(in.categoryName)
		catID, ok := categoryIDs[catKey]
		if !ok {
			cat, err := uc.catalogo.GetOrCreateCategory(ctx, in.categoryName, "")
			if err != nil {
				if rej := rejectionFor(row.Index, ColCategoria, in.categoryName, err); rej != nil {
					report.Rejected++
					report.Rejections = append(report.Rejections, *rej)
					continue
				}
				return report, err
			}
			catID = cat.ID
			categoryIDs[catKey] = catID
		}

		upsert := in.toUpsert(catID)
		if upsert.Code != "" && seenCodes[upsert.Code] {
			// Última fila gana dentro del lote.
			upsert.UpdateIntent = true
		}

		_, created, err := uc.catalogo.UpsertProduct(ctx, upsert)
		if err != nil {
			if rej := rejectionFor(row.Index, "", "", err); rej != nil {
				report.Rejected++
				report.Rejections = append(report.Rejections, *rej)
				continue
			}
			return report, err
		}
		if upsert.Code != "" {
			seenCodes[upsert.Code] = true
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	uc.log.Info().
		Int("total", report.Total).
		Int("creados", report.Created).
		Int("actualizados", report.Updated).
		Int("rechazados", report.Rejected).
		Msg("importación completada")
	return report, nil
}

// parsedRow es una fila validada y tipada, lista para el upsert.
type parsedRow struct {
	code         string
	name         string
	categoryName string
	price        decimal.Decimal
	stock        int
	minStock     int
	unit         string
	brand        string
	location     string
	description  string
}

func (p *parsedRow) toUpsert(categoryID string) catalog.UpsertInput {
	return catalog.UpsertInput{
		Code:        p.code,
		Name:        p.name,
		Price:       p.price,
		Stock:       p.stock,
		MinStock:    p.minStock,
		Unit:        p.unit,
		CategoryID:  categoryID,
		Brand:       p.brand,
		Location:    p.location,
		Description: p.description,
	}
}

// parseRow valida presencia y tipos. Devuelve la fila tipada o el rechazo.
func (uc *UseCase) parseRow(row ports.Row) (*parsedRow, *dto.RowRejection) {
	get := func(col string) string {
		return strings.TrimSpace(row.Values[col])
	}

	for _, col := range requiredColumns {
		if get(col) == "" {
			return nil, &dto.RowRejection{
				Row:    row.Index,
				Field:  col,
				Reason: "MissingField(" + col + ")",
			}
		}
	}

	price, err := decimal.NewFromString(get(ColPrecio))
	if err != nil {
		return nil, &dto.RowRejection{
			Row:    row.Index,
			Field:  ColPrecio,
			Value:  get(ColPrecio),
			Reason: "TypeError(" + ColPrecio + ")",
		}
	}

	stock, err := strconv.Atoi(get(ColStock))
	if err != nil {
		return nil, &dto.RowRejection{
			Row:    row.Index,
			Field:  ColStock,
			Value:  get(ColStock),
			Reason: "TypeError(" + ColStock + ")",
		}
	}

	minStock := 0
	if raw := get(ColStockMinimo); raw != "" {
		minStock, err = strconv.Atoi(raw)
		if err != nil {
			return nil, &dto.RowRejection{
				Row:    row.Index,
				Field:  ColStockMinimo,
				Value:  raw,
				Reason: "TypeError(" + ColStockMinimo + ")",
			}
		}
	}

	return &parsedRow{
		code:         strings.ToUpper(get(ColCodigo)),
		name:         get(ColNombre),
		categoryName: get(ColCategoria),
		price:        price,
		stock:        stock,
		minStock:     minStock,
		unit:         get(ColUnidad),
		brand:        get(ColMarca),
		location:     get(ColUbicacion),
		description:  get(ColDescripcion),
	}, nil
}

// rejectionFor traduce errores de dominio a rechazos por fila. Devuelve nil
// para errores de infraestructura, que abortan el lote.
func rejectionFor(row int, field, value string, err error) *dto.RowRejection {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &dto.RowRejection{
			Row:    row,
			Field:  ve.Field,
			Value:  ve.Value,
			Reason: "ValidationError(" + ve.Field + ")",
		}
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return &dto.RowRejection{
			Row:    row,
			Field:  ColCodigo,
			Value:  ce.Code,
			Reason: "ConflictError(" + ColCodigo + ")",
		}
	}
	var iv *domain.InvariantViolation
	if errors.As(err, &iv) {
		return &dto.RowRejection{
			Row:    row,
			Field:  field,
			Value:  value,
			Reason: "InvariantViolation",
		}
	}
	return nil
}
