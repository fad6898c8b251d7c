package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/reporting"
)

// ERPHandler maneja los endpoints de diagnóstico y acceso directo al ERP.
type ERPHandler struct {
	uc *reporting.UseCase
}

// NewERPHandler construye el handler.
func NewERPHandler(uc *reporting.UseCase) *ERPHandler {
	return &ERPHandler{uc: uc}
}

// TestConnection prueba alcance y credenciales contra el RESTlet.
// GET /api/erp/test-connection
//
// Pensado para la pantalla de configuración: distingue credenciales
// rechazadas (502) de endpoint inalcanzable (504).
func (h *ERPHandler) TestConnection(c *fiber.Ctx) error {
	if err := h.uc.TestConnection(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "message": "conexión con el ERP verificada"})
}

type savedSearchBody struct {
	SearchID string            `json:"search_id"`
	Filters  map[string]string `json:"filters"`
}

// SavedSearch ejecuta una saved search arbitraria del ERP (solo admin).
// POST /api/erp/saved-search
func (h *ERPHandler) SavedSearch(c *fiber.Ctx) error {
	var body savedSearchBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: "body JSON inválido",
		})
	}

	rows, err := h.uc.RunSavedSearch(c.Context(), body.SearchID, body.Filters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(rows), "rows": rows})
}
