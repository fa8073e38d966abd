// Package pdf genera el reporte imprimible de alertas de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la ferretería │ Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de alertas, críticas y advertencias          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Stock | Mínimo | Severidad       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de reposición                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorWarning  = &props.Color{Red: 190, Green: 120, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AlertReportGenerator genera el reporte de alertas usando Maroto v2.
type AlertReportGenerator struct {
	storeName string
}

// NewAlertReportGenerator construye el generador con el nombre del negocio.
func NewAlertReportGenerator(storeName string) *AlertReportGenerator {
	if storeName == "" {
		storeName = "Ferretería"
	}
	return &AlertReportGenerator{storeName: storeName}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *AlertReportGenerator) Generate(_ context.Context, alerts []dto.AlertDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de alertas de stock", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(alerts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(alerts) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin alertas: todos los productos están por encima de su mínimo.", props.Text{
				Size: 10, Align: align.Center, Top: 4, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableAlertRows(alerts) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Los productos en severidad crítica están agotados. "+
				"Priorice su reposición para no perder ventas de mostrador.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *AlertReportGenerator) headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de alertas de stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(alerts []dto.AlertDTO) core.Row {
	criticas := 0
	for _, a := range alerts {
		if a.Severity == "critical" {
			criticas++
		}
	}
	resumen := fmt.Sprintf("Total: %d alertas   |   Críticas (agotados): %d   |   Advertencias: %d",
		len(alerts), criticas, len(alerts)-criticas)
	return row.New(10).Add(col.New(12).Add(
		text.New(resumen, props.Text{Size: 9, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Stock", 1, align.Right),
		h("Mínimo", 2, align.Right),
		h("Severidad", 2, align.Center),
	)
}

func tableAlertRows(alerts []dto.AlertDTO) []core.Row {
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		sevColor := colorWarning
		sevLabel := "ADVERTENCIA"
		if a.Severity == "critical" {
			sevColor = colorCritical
			sevLabel = "CRÍTICA"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				nonEmpty(a.Code, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				a.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", a.CurrentStock),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d %s", a.MinStock, a.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				sevLabel,
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: sevColor},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
