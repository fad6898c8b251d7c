package report

import (
	"github.com/shopspring/decimal"

	"github.com/drewshoe/top40-api/internal/domain/entity"
)

// MasterData mapas de lookup O(1) para el join del enriquecimiento.
// Claves: ItemID y CustomerID (únicos dentro de cada maestro).
type MasterData struct {
	Items      map[string]entity.Item
	Customers  map[string]entity.Customer
	CostRetail map[string]entity.CostRetail
}

// Enrich une cada transacción con los maestros, aplica la política de nulos
// una única vez y calcula las métricas derivadas. Los filtros se evalúan aquí,
// antes de cualquier agregación. Transformación pura: sin I/O ni estado
// compartido.
//
// Política de nulos:
//   - sales_units, sales_dollars, returns ausentes → 0 (cero de decimal)
//   - cost ausente → 0 y el registro queda marcado para revisión
//   - retail ausente → retail nativo del ERP
//   - category, vendor, territory, material_desc vacíos → "Unknown"
//
// Un ítem o cliente sin registro en el maestro no aborta el pipeline: se
// resuelve a defaults y la transacción sigue aportando al ranking. Los
// contadores de calidad cuentan solo registros que sobreviven a los filtros.
func Enrich(txs []entity.Transaction, md MasterData, f Filters) ([]EnrichedRecord, DataQuality) {
	records := make([]EnrichedRecord, 0, len(txs))
	var quality DataQuality

	for _, tx := range txs {
		r := EnrichedRecord{
			TransactionID:   tx.TransactionID,
			TransactionDate: tx.TransactionDate,
			TransactionType: tx.TransactionType,
			ItemID:          tx.ItemID,
			CustomerID:      tx.CustomerID,
			SalesUnits:      tx.SalesUnits,
			SalesDollars:    tx.SalesDollars,
			Returns:         tx.Returns,
		}

		item, itemOK := md.Items[tx.ItemID]
		if itemOK {
			r.Style = textOrUnknown(item.Style)
			r.MaterialDesc = textOrUnknown(item.MaterialDesc)
			r.ColorDesc = textOrUnknown(item.ColorDesc)
			r.Category = textOrUnknown(item.Category)
			r.Vendor = textOrUnknown(item.Vendor)
		} else {
			// El estilo cae al item_id para que ítems desconocidos distintos
			// no colapsen en un único pseudo-estilo del ranking.
			r.Style = tx.ItemID
			r.MaterialDesc = Unknown
			r.ColorDesc = Unknown
			r.Category = Unknown
			r.Vendor = Unknown
		}

		cust, custOK := md.Customers[tx.CustomerID]
		if custOK {
			r.CustomerName = textOrUnknown(cust.CustomerName)
			r.Territory = textOrUnknown(cust.Territory)
			r.CustomerCategory = textOrUnknown(cust.CustomerCategory)
		} else {
			r.CustomerName = tx.CustomerID
			r.Territory = Unknown
			r.CustomerCategory = Unknown
		}

		// Filtros antes de agregar: un registro excluido no suma en nada,
		// tampoco en los contadores de calidad que ve el usuario.
		if !f.MatchItem(r.Category, r.Vendor) || !f.MatchTerritory(r.Territory) {
			continue
		}

		if !itemOK {
			quality.MissingItem++
		}
		if !custOK {
			quality.MissingCustomer++
		}

		r.Cost, r.Retail, r.CostFlagged = resolveCostRetail(tx.ItemID, item, itemOK, md.CostRetail, &quality)
		if r.CostFlagged {
			quality.ZeroCostFlagged++
		}

		// Métricas derivadas
		r.NetUnits = r.SalesUnits.Sub(r.Returns) // puede ser negativo, no se recorta
		r.GrossProfit = r.Retail.Sub(r.Cost)
		if r.Retail.IsPositive() {
			r.GMPct = decimal.NullDecimal{
				Decimal: r.GrossProfit.Div(r.Retail),
				Valid:   true,
			}
		}

		records = append(records, r)
	}

	return records, quality
}

// resolveCostRetail aplica el override de Merchandising. Sin override: cost 0
// marcado y retail nativo del ERP. Con override: cost/retail del override,
// cayendo a los mismos defaults campo a campo si vienen null.
func resolveCostRetail(
	itemID string,
	item entity.Item,
	itemOK bool,
	overrides map[string]entity.CostRetail,
	quality *DataQuality,
) (cost, retail decimal.Decimal, flagged bool) {
	nativeRetail := decimal.Zero
	if itemOK {
		nativeRetail = item.RetailPrice
	}

	cr, ok := overrides[itemID]
	if !ok {
		quality.MissingCostOverride++
		quality.RetailFallback++
		return decimal.Zero, nativeRetail, true
	}

	if cr.Cost.Valid {
		cost = cr.Cost.Decimal
	} else {
		flagged = true
	}

	if cr.Retail.Valid {
		// El override gana sobre el retail nativo aunque ambos existan.
		retail = cr.Retail.Decimal
	} else {
		quality.RetailFallback++
		retail = nativeRetail
	}

	return cost, retail, flagged
}

func textOrUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
