// Package pdf implementa la exportación del reporte Top 40 como PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Período + fecha de corrida  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Estilo/Cliente | Descripción | Unid | Netas |   │
//	│         Ventas $ | GM%                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Netas / Ventas / GM% del universo      │
//	│  FOOTER: correcciones de calidad de datos aplicadas         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 60, Blue: 0}
)

const maxNameLen = 38 // ancho útil de la columna de descripción

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, table *dto.ReportTableDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titleFor(table.View), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(table))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(table.View))
	for _, r := range tableRows(table) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(table.Totals))

	m.AddRows(line.NewRow(2))
	for _, r := range qualityFooterRows(table.Quality) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y período + corrida (der).
func headerRow(table *dto.ReportTableDTO) core.Row {
	period := table.StartDate + " a " + table.EndDate
	generated := table.GeneratedAt.Format("02/01/2006 15:04 UTC")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(titleFor(table.View), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d filas", table.RowCount), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+period, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+generated, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla; la segunda columna cambia según la vista.
func tableHeaderRow(view string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}

	keyLabel := "Estilo"
	descLabel := "Material / Color"
	if isCustomerView(view) {
		keyLabel = "Cliente"
		descLabel = "Territorio"
	}

	return row.New(8).Add(
		h("#", 1, align.Center),
		h(keyLabel, 3, align.Left),
		h(descLabel, 3, align.Left),
		h("Unid.", 1, align.Right),
		h("Netas", 1, align.Right),
		h("Ventas $", 2, align.Right),
		h("GM%", 1, align.Right),
	)
}

// tableRows: una fila por grupo rankeado. Un grupo con registros marcados por
// costo faltante lleva asterisco junto al GM%.
func tableRows(table *dto.ReportTableDTO) []core.Row {
	result := make([]core.Row, 0, len(table.Rows))
	for _, r := range table.Rows {
		gm := r.GMPct
		if r.CostFlagged {
			gm += " *"
		}

		result = append(result, row.New(6).Add(
			col.New(1).Add(cell(fmt.Sprintf("%d", r.Rank), align.Center)),
			col.New(3).Add(cell(format.Truncate(keyDisplay(r, table.View), maxNameLen), align.Left)),
			col.New(3).Add(cell(format.Truncate(descDisplay(r, table.View), maxNameLen), align.Left)),
			col.New(1).Add(cell(format.Number(r.SalesUnits), align.Right)),
			col.New(1).Add(cell(format.Number(r.NetUnits), align.Right)),
			col.New(2).Add(cell(format.Currency(r.SalesDollars), align.Right)),
			col.New(1).Add(cell(gm, align.Right)),
		))
	}
	return result
}

// totalsRow: KPIs del universo filtrado completo, no solo de las filas mostradas.
func totalsRow(totals dto.ReportTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: colorPrimary,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(8).Add(
		col.New(4).Add(label("TOTALES DEL PERÍODO:")),
		col.New(2).Add(value(format.Number(totals.SalesUnits) + " unid.")),
		col.New(2).Add(value(format.Number(totals.NetUnits) + " netas")),
		col.New(2).Add(value(format.Currency(totals.SalesDollars))),
		col.New(2).Add(value("GM " + totals.GMPct)),
	)
}

// qualityFooterRows: resumen de correcciones aplicadas durante el enriquecimiento.
func qualityFooterRows(q dto.DataQualityDTO) []core.Row {
	if q.Total == 0 {
		return []core.Row{
			row.New(5).Add(col.New(12).Add(
				text.New("Sin correcciones de datos en esta corrida.", props.Text{
					Size: 7, Color: colorGray, Top: 1,
				}),
			)),
		}
	}

	summary := fmt.Sprintf(
		"Correcciones aplicadas: %d ítems sin maestro, %d clientes sin maestro, "+
			"%d sin override de costo (* costo en cero), %d con retail nativo del ERP.",
		q.MissingItem, q.MissingCustomer, q.MissingCostOverride, q.RetailFallback,
	)
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("CALIDAD DE DATOS", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorAlert, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New(summary, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cell(s string, a align.Type) core.Component {
	return text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1})
}

func titleFor(view string) string {
	switch {
	case view == dto.ViewStyles:
		return "Top 40 Estilos por Unidades"
	case view == dto.ViewCustomers:
		return "Top 40 Clientes por Unidades"
	case strings.HasPrefix(view, "style:"):
		return "Clientes del Estilo " + subject(view)
	case strings.HasPrefix(view, "customer:"):
		return "Estilos del Cliente " + subject(view)
	default:
		return "Reporte de Ventas"
	}
}

func isCustomerView(view string) bool {
	return strings.HasSuffix(view, dto.ViewCustomers)
}

// keyDisplay texto principal de la fila: estilo, o nombre del cliente.
func keyDisplay(r dto.ReportRow, view string) string {
	if isCustomerView(view) && r.Name != "" {
		return r.Name
	}
	return r.Key
}

// descDisplay columna descriptiva: material/color para estilos, territorio
// para clientes.
func descDisplay(r dto.ReportRow, view string) string {
	if isCustomerView(view) {
		return r.Territory
	}
	if r.ColorDesc == "" {
		return r.MaterialDesc
	}
	return r.MaterialDesc + " / " + r.ColorDesc
}

// subject extrae el sujeto de una vista de drilldown "style:X:customers".
func subject(view string) string {
	parts := strings.SplitN(view, ":", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
