package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportUC  *reporting.UseCase
	PDFGen    ports.ReportPDFGenerator
	JWTSecret string
}

// Router registra las rutas de la API. Todo lo que toca al ERP exige Bearer
// Token; los reportes admiten los tres roles, el acceso directo al ERP queda
// restringido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleMerchandising, RoleSales, RoleAdmin)

	// Reportes (protegido, cualquier rol)
	reports := api.Group("/reports", anyRole)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/top40/styles", reportHandler.GetTop40Styles)
	reports.Get("/top40/customers", reportHandler.GetTop40Customers)
	reports.Get("/styles/:style/customers", reportHandler.DrilldownStyle)
	reports.Get("/customers/:id/styles", reportHandler.DrilldownCustomer)

	// Exports CSV/PDF (protegido, cualquier rol)
	exports := api.Group("/exports", anyRole)
	exportHandler := NewExportHandler(deps.ReportUC, deps.PDFGen)
	exports.Get("/top40/styles", exportHandler.Top40Styles)
	exports.Get("/top40/customers", exportHandler.Top40Customers)
	exports.Get("/styles/:style/customers", exportHandler.DrilldownStyle)
	exports.Get("/customers/:id/styles", exportHandler.DrilldownCustomer)

	// Diagnóstico y acceso directo al ERP (protegido, roles acotados)
	erpGroup := api.Group("/erp")
	erpHandler := NewERPHandler(deps.ReportUC)
	erpGroup.Get("/test-connection", RequireRole(RoleAdmin, RoleMerchandising), erpHandler.TestConnection)
	erpGroup.Post("/saved-search", RequireRole(RoleAdmin), erpHandler.SavedSearch)
}
