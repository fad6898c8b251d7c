// Package ports define los puertos de salida de la capa de aplicación.
// Los casos de uso solo conocen estos contratos; los adaptadores concretos
// (cliente RESTlet real, stubs de test) los implementan.
package ports

import (
	"context"
	"encoding/json"

	"github.com/drewshoe/top40-api/internal/domain/entity"
)

// TransactionQuery ventana y filtros de una consulta de transacciones de
// venta. Slices vacíos significan "sin filtro en esa dimensión"; Style y
// Customer acotan los drilldowns.
type TransactionQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD

	TransactionType string
	Category        []string
	Vendor          []string
	Brand           []string
	Territory       []string
	Style           string
	Customer        string
}

// ERPGateway puerto de salida hacia el ERP. Las implementaciones no
// reintentan; la política de reintentos vive en el caso de uso.
type ERPGateway interface {
	// TestConnection verifica alcance y credenciales contra el endpoint.
	TestConnection(ctx context.Context) error

	// GetSalesTransactions trae las transacciones de venta de la ventana dada.
	GetSalesTransactions(ctx context.Context, q TransactionQuery) ([]entity.Transaction, error)

	// GetItemMaster trae el maestro de ítems; itemIDs vacío significa todos.
	GetItemMaster(ctx context.Context, itemIDs []string) ([]entity.Item, error)

	// GetCustomerMaster trae el maestro de clientes; customerIDs vacío significa todos.
	GetCustomerMaster(ctx context.Context, customerIDs []string) ([]entity.Customer, error)

	// GetCostRetailData trae el override de costo/retail indexado por item_id.
	GetCostRetailData(ctx context.Context, itemIDs []string) (map[string]entity.CostRetail, error)

	// ExecuteSavedSearch ejecuta una saved search arbitraria y devuelve filas crudas.
	ExecuteSavedSearch(ctx context.Context, searchID string, filters map[string]string) ([]json.RawMessage, error)
}
