package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	// ErrAuthFailure la firma local fue correcta pero el ERP rechazó credenciales/token.
	// No se reintenta; el usuario debe re-ingresar credenciales.
	ErrAuthFailure = errors.New("el ERP rechazó las credenciales")

	// ErrTransportFailure error de red o timeout hacia el ERP. Reintentable de forma acotada.
	ErrTransportFailure = errors.New("fallo de red o timeout hacia el ERP")

	// ErrMalformedResponse el cuerpo de la respuesta no es el envelope JSON esperado.
	ErrMalformedResponse = errors.New("respuesta del ERP con formato inesperado")

	// ErrInvalidInput parámetros de consulta inválidos (fechas, filtros).
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrUnauthorized token de API ausente o inválido.
	ErrUnauthorized = errors.New("no autorizado")
)

// ErpScriptError el script del lado del ERP ejecutó pero devolvió status "error"
// (ej: saved search inexistente, action desconocida). No se reintenta; el
// mensaje del ERP se propaga textual para diagnóstico.
type ErpScriptError struct {
	Action  string // action del request que falló
	Message string // mensaje textual devuelto por el ERP
}

func (e *ErpScriptError) Error() string {
	return fmt.Sprintf("erp: script error en %q: %s", e.Action, e.Message)
}
