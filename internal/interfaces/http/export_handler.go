package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/application/reporting"
)

// Formatos de export soportados.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportHandler genera descargas CSV/PDF de los reportes. El CSV lleva los
// valores crudos (para Excel); el PDF es la versión presentable.
type ExportHandler struct {
	uc  *reporting.UseCase
	pdf ports.ReportPDFGenerator
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *reporting.UseCase, pdf ports.ReportPDFGenerator) *ExportHandler {
	return &ExportHandler{uc: uc, pdf: pdf}
}

// Top40Styles exporta el Top 40 de estilos.
// GET /api/exports/top40/styles?format=csv|pdf
func (h *ExportHandler) Top40Styles(c *fiber.Ctx) error {
	table, err := h.uc.GetTop40Styles(c.Context(), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, table, "top_40_styles")
}

// Top40Customers exporta el Top 40 de clientes.
// GET /api/exports/top40/customers?format=csv|pdf
func (h *ExportHandler) Top40Customers(c *fiber.Ctx) error {
	table, err := h.uc.GetTop40Customers(c.Context(), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, table, "top_40_customers")
}

// DrilldownStyle exporta los clientes de un estilo.
// GET /api/exports/styles/:style/customers?format=csv|pdf
func (h *ExportHandler) DrilldownStyle(c *fiber.Ctx) error {
	style := c.Params("style")
	table, err := h.uc.DrilldownStyle(c.Context(), style, parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, table, "style_"+sanitize(style)+"_customers")
}

// DrilldownCustomer exporta los estilos de un cliente.
// GET /api/exports/customers/:id/styles?format=csv|pdf
func (h *ExportHandler) DrilldownCustomer(c *fiber.Ctx) error {
	id := c.Params("id")
	table, err := h.uc.DrilldownCustomer(c.Context(), id, parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return h.render(c, table, "customer_"+sanitize(id)+"_styles")
}

// render serializa la tabla en el formato pedido con nombre de archivo
// timestampeado, ej: top_40_styles_20260131_154500.csv.
func (h *ExportHandler) render(c *fiber.Ctx, table *dto.ReportTableDTO, baseName string) error {
	format := strings.ToLower(c.Query("format", FormatCSV))
	stamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", baseName, stamp, format)

	switch format {
	case FormatCSV:
		payload, err := renderCSV(table)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(payload)

	case FormatPDF:
		payload, err := h.pdf.GenerateReportPDF(c.Context(), table)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Send(payload)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: fmt.Sprintf("formato %q no soportado (csv|pdf)", format),
		})
	}
}

// renderCSV escribe la tabla con valores crudos, sin abreviar: el CSV es para
// trabajar en Excel, no para presentar.
func renderCSV(table *dto.ReportTableDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"rank", "key", "name", "material_desc", "color_desc",
		"category", "vendor", "territory",
		"sales_units", "net_units", "sales_dollars", "gross_profit", "gm_pct", "cost_flagged",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	for _, r := range table.Rows {
		record := []string{
			fmt.Sprintf("%d", r.Rank),
			r.Key,
			r.Name,
			r.MaterialDesc,
			r.ColorDesc,
			r.Category,
			r.Vendor,
			r.Territory,
			r.SalesUnits.String(),
			r.NetUnits.String(),
			r.SalesDollars.String(),
			r.GrossProfit.String(),
			r.GMPct,
			fmt.Sprintf("%t", r.CostFlagged),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export csv: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitize limpia un sujeto de drilldown para usarlo en un nombre de archivo.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
