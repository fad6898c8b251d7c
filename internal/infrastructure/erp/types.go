package erp

import "encoding/json"

// Actions reconocidas por el RESTlet del ERP. Cada request es un POST con
// body JSON {action, ...parámetros de la action}.
const (
	actionTestConnection       = "test_connection"
	actionGetSalesTransactions = "get_sales_transactions"
	actionGetItemMaster        = "get_item_master"
	actionGetCustomerMaster    = "get_customer_master"
	actionExecuteSavedSearch   = "execute_saved_search"
	actionGetCostRetailData    = "get_cost_retail_data"
)

// transactionFilters forma de wire de los filtros de get_sales_transactions.
// Cualquier campo ausente significa "sin filtro en esa dimensión"; Brand se
// resuelve del lado del ERP (el catálogo local no trae marca).
type transactionFilters struct {
	TransactionType string   `json:"transaction_type,omitempty"`
	Category        []string `json:"category,omitempty"`
	Vendor          []string `json:"vendor,omitempty"`
	Brand           []string `json:"brand,omitempty"`
	Territory       []string `json:"territory,omitempty"`
	Style           string   `json:"style,omitempty"`
	Customer        string   `json:"customer,omitempty"`
}

// ── Variantes tipadas de request por action ───────────────────────────────────
// El envelope del ERP es dinámico; acá se modela como structs etiquetados por
// action, validados en el borde del cliente, en lugar de propagar mapas sin
// tipo hacia el pipeline.

type testConnectionRequest struct {
	Action string `json:"action"`
}

type salesTransactionsRequest struct {
	Action    string             `json:"action"`
	StartDate string             `json:"start_date"` // YYYY-MM-DD
	EndDate   string             `json:"end_date"`   // YYYY-MM-DD
	Filters   transactionFilters `json:"filters"`
}

type itemMasterRequest struct {
	Action  string   `json:"action"`
	ItemIDs []string `json:"item_ids"` // vacío = todos los ítems
}

type customerMasterRequest struct {
	Action      string   `json:"action"`
	CustomerIDs []string `json:"customer_ids"` // vacío = todos los clientes
}

type savedSearchRequest struct {
	Action   string            `json:"action"`
	SearchID string            `json:"search_id"`
	Filters  map[string]string `json:"filters"`
}

type costRetailRequest struct {
	Action  string   `json:"action"`
	ItemIDs []string `json:"item_ids"`
}

// envelope respuesta estándar del RESTlet: {status, data?, message?, count?}.
type envelope struct {
	Status  string          `json:"status"` // "success" | "error"
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

const statusSuccess = "success"
