package entity

import "github.com/shopspring/decimal"

// Item registro del maestro de ítems del ERP (datos de referencia,
// refrescados por consulta). ItemID es clave única dentro del maestro.
type Item struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	Style        string          `json:"style"` // clave de agrupación del reporte de estilos
	MaterialDesc string          `json:"material_desc"`
	ColorDesc    string          `json:"color_desc"`
	Category     string          `json:"category"`
	Vendor       string          `json:"vendor"`
	RetailPrice  decimal.Decimal `json:"retail_price"` // retail nativo del ERP (fallback)
}
