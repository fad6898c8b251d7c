package entity

// Customer registro del maestro de clientes del ERP (datos de referencia).
// CustomerID es clave única dentro del maestro.
type Customer struct {
	CustomerID       string `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	Territory        string `json:"territory"`
	CustomerCategory string `json:"customer_category"`
}
