package entity

import "github.com/shopspring/decimal"

// CostRetail override de costo/retail mantenido por Merchandising.
// Reemplaza el campo de costo nativo del ERP, que se considera no confiable.
// NullDecimal distingue "campo ausente/null" (Valid=false) de un cero real:
// un cost null dentro de un override existente también marca el registro
// para revisión manual.
type CostRetail struct {
	Cost   decimal.NullDecimal `json:"cost"`
	Retail decimal.NullDecimal `json:"retail"`
}
