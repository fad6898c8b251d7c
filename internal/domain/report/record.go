package report

import "github.com/shopspring/decimal"

// Unknown default de la política de nulos para campos de texto.
const Unknown = "Unknown"

// EnrichedRecord join en memoria de Transaction × Item × Customer × CostRetail
// con la política de nulos ya aplicada y las métricas derivadas calculadas.
// No se persiste; vive lo que dura la consulta.
type EnrichedRecord struct {
	TransactionID   string
	TransactionDate string
	TransactionType string

	// Atributos de ítem resueltos
	ItemID       string
	Style        string
	MaterialDesc string
	ColorDesc    string
	Category     string
	Vendor       string

	// Atributos de cliente resueltos
	CustomerID       string
	CustomerName     string
	Territory        string
	CustomerCategory string

	// Métricas base (post política de nulos)
	SalesUnits   decimal.Decimal
	SalesDollars decimal.Decimal
	Returns      decimal.Decimal
	Cost         decimal.Decimal // costo corregido de Merchandising
	Retail       decimal.Decimal

	// Métricas derivadas
	NetUnits    decimal.Decimal     // SalesUnits - Returns (puede ser negativo)
	GrossProfit decimal.Decimal     // Retail - Cost
	GMPct       decimal.NullDecimal // (Retail-Cost)/Retail; inválido si Retail = 0

	// CostFlagged el costo se rellenó con 0 por falta de override; revisar manualmente.
	CostFlagged bool
}

// DataQuality contadores de fallbacks aplicados durante el enriquecimiento.
// Son advertencias acumulativas: se reportan junto al resultado, nunca abortan
// el pipeline.
type DataQuality struct {
	MissingItem         int `json:"missing_item"`          // item_id sin registro en el maestro
	MissingCustomer     int `json:"missing_customer"`      // customer_id sin registro en el maestro
	MissingCostOverride int `json:"missing_cost_override"` // sin entrada en el override de Merchandising
	ZeroCostFlagged     int `json:"zero_cost_flagged"`     // registros con costo 0 marcados para revisión
	RetailFallback      int `json:"retail_fallback"`       // retail tomado del precio nativo del ERP
}

// Total suma de advertencias (para el log del pipeline).
func (q DataQuality) Total() int {
	return q.MissingItem + q.MissingCustomer + q.MissingCostOverride +
		q.ZeroCostFlagged + q.RetailFallback
}
