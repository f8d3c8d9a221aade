// Package pdf implementa la generación del reporte de orden de producción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app  │  Código de orden + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDEN: estado / prioridad / cantidad / fechas               │
//	│  CENTRO DE TRABAJO: código + nombre + capacidad teórica     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA BOM: Código | Componente | Cant | Unidad | Costo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CALIDAD: controles asociados con resultado                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/plataforma-app/erp-api/internal/application/usecase"
	"github.com/plataforma-app/erp-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoOrderReport implementa usecase.OrderReportPDFGenerator usando Maroto v2.
type MarotoOrderReport struct{}

var _ usecase.OrderReportPDFGenerator = (*MarotoOrderReport)(nil)

// NewMarotoOrderReport construye el generador.
func NewMarotoOrderReport() *MarotoOrderReport { return &MarotoOrderReport{} }

// GenerateOrderReport genera el PDF y devuelve sus bytes.
func (g *MarotoOrderReport) GenerateOrderReport(
	_ context.Context,
	order *entity.ProductionOrder,
	bom *entity.BOM,
	wc *entity.WorkCenter,
	controls []*entity.QualityControl,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Producción "+order.Code, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(order))
	if wc != nil {
		m.AddRows(workCenterRow(wc))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de componentes de la BOM
	if bom != nil {
		m.AddRows(bomTitleRow(bom))
		m.AddRows(tableHeaderRow())
		for _, r := range tableItemRows(bom.Items) {
			m.AddRows(r)
		}
	}

	// Controles de calidad
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range qualityRows(controls) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la plataforma (izq) y código + fecha (der).
func headerRow(order *entity.ProductionOrder) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Plataforma ERP", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Módulo de Producción", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: estado, prioridad, cantidad y fechas de ejecución.
func orderRow(order *entity.ProductionOrder) core.Row {
	started := "—"
	if order.StartedAt != nil {
		started = order.StartedAt.Format("02/01/2006 15:04")
	}
	finished := "—"
	if order.FinishedAt != nil {
		finished = order.FinishedAt.Format("02/01/2006 15:04")
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA ORDEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Estado: %s   |   Prioridad: %s   |   Cantidad: %s",
				order.Status, order.Priority, order.Quantity.String(),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Inicio: %s   |   Fin: %s", started, finished),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

// workCenterRow: centro de trabajo asignado y su capacidad teórica diaria.
func workCenterRow(wc *entity.WorkCenter) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CENTRO DE TRABAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s   |   Capacidad teórica: %s h/día",
				wc.Code, wc.Name, wc.TheoreticalDailyCapacity().StringFixed(2),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func bomTitleRow(bom *entity.BOM) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("LISTA DE MATERIALES: %s — %s (v%d)", bom.Code, bom.Name, bom.Version),
			props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow: cabecera de la tabla de componentes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Componente", 5, align.Left),
		h("Cant.", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Costo Unit.", 2, align.Right),
	)
}

// tableItemRows: una fila por componente.
func tableItemRows(items []entity.BOMItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ComponentName
		if !it.Leaf() {
			name += " (subensamble)"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.ComponentCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// qualityRows: controles de calidad asociados a la orden.
func qualityRows(controls []*entity.QualityControl) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONTROLES DE CALIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(controls) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin controles registrados.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
		return rows
	}
	for _, qc := range controls {
		inspected := "—"
		if qc.InspectedAt != nil {
			inspected = qc.InspectedAt.Format("02/01/2006 15:04")
		}
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s   |   Resultado: %s   |   Muestra: %d   |   Defectos: %d   |   Inspección: %s",
				qc.Code, qc.Status, qc.SampleSize, qc.DefectsFound, inspected,
			), props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}
