package entity

import "github.com/shopspring/decimal"

// TransactionTypeInvoice es el único tipo que alimenta los reportes: las
// órdenes abiertas sin facturar no cuentan como venta.
const TransactionTypeInvoice = "invoice"

// Transaction transacción de venta tal como la devuelve el ERP para la ventana
// consultada. Inmutable una vez obtenida; no se persiste localmente.
// Los numéricos ausentes o null decodifican al cero de decimal, que coincide
// con la política de nulos (ausente → 0).
type Transaction struct {
	TransactionID   string          `json:"transaction_id"`
	TransactionDate string          `json:"transaction_date"` // YYYY-MM-DD
	TransactionType string          `json:"transaction_type"` // invoice | sales_order
	CustomerID      string          `json:"customer_id"`
	ItemID          string          `json:"item_id"`
	SalesUnits      decimal.Decimal `json:"sales_units"`
	SalesDollars    decimal.Decimal `json:"sales_dollars"`
	Returns         decimal.Decimal `json:"returns"`
}
