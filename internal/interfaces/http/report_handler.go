package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/reporting"
)

// ReportHandler maneja los endpoints del reporte Top 40 y sus drilldowns.
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetTop40Styles devuelve los 40 estilos con más unidades vendidas.
// GET /api/reports/top40/styles?start_date=...&end_date=...&category=...&vendor=...&brand=...&territory=...
//
// Los filtros multivaluados van separados por coma; "All" o ausente no filtra.
func (h *ReportHandler) GetTop40Styles(c *fiber.Ctx) error {
	table, err := h.uc.GetTop40Styles(c.Context(), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(table)
}

// GetTop40Customers devuelve los 40 clientes con más unidades compradas.
// GET /api/reports/top40/customers
func (h *ReportHandler) GetTop40Customers(c *fiber.Ctx) error {
	table, err := h.uc.GetTop40Customers(c.Context(), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(table)
}

// DrilldownStyle devuelve todos los clientes que compraron el estilo, rankeados.
// GET /api/reports/styles/:style/customers
func (h *ReportHandler) DrilldownStyle(c *fiber.Ctx) error {
	table, err := h.uc.DrilldownStyle(c.Context(), c.Params("style"), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(table)
}

// DrilldownCustomer devuelve todos los estilos que compró el cliente, rankeados.
// GET /api/reports/customers/:id/styles
func (h *ReportHandler) DrilldownCustomer(c *fiber.Ctx) error {
	table, err := h.uc.DrilldownCustomer(c.Context(), c.Params("id"), parseReportRequest(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(table)
}

// parseReportRequest arma el request desde los query params. La validación de
// fechas y el centinela "All" se resuelven en el caso de uso.
func parseReportRequest(c *fiber.Ctx) dto.ReportRequest {
	return dto.ReportRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Category:  splitList(c.Query("category")),
		Vendor:    splitList(c.Query("vendor")),
		Brand:     splitList(c.Query("brand")),
		Territory: splitList(c.Query("territory")),
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
