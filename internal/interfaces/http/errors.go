package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/domain"
)

// writeError traduce la taxonomía de errores del dominio a HTTP. La distinción
// importa para el operador: un 502 de auth se arregla rotando credenciales, un
// 504 se arregla esperando o reintentando.
func writeError(c *fiber.Ctx, err error) error {
	var scriptErr *domain.ErpScriptError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrAuthFailure):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "ERP_AUTH_FAILURE", Message: "el ERP rechazó las credenciales de integración",
		})
	case errors.Is(err, domain.ErrTransportFailure):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Code: "ERP_UNREACHABLE", Message: "no se pudo alcanzar al ERP",
		})
	case errors.As(err, &scriptErr):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "ERP_SCRIPT_ERROR", Message: scriptErr.Message,
		})
	case errors.Is(err, domain.ErrMalformedResponse):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "ERP_MALFORMED_RESPONSE", Message: "la respuesta del ERP no pudo interpretarse",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
