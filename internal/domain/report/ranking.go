package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TopLimit tamaño fijo de los rankings principales.
const TopLimit = 40

// Group agregado por estilo o por cliente. Key es la clave de agrupación
// (estilo o customer_id); los atributos descriptivos toman el primer valor
// visto dentro del grupo.
type Group struct {
	Rank int    `json:"rank"` // 1..N tras ordenar
	Key  string `json:"key"`
	Name string `json:"name"` // estilo o nombre de cliente para display

	// Atributos de estilo (vista de estilos / drilldown de cliente)
	MaterialDesc string `json:"material_desc,omitempty"`
	ColorDesc    string `json:"color_desc,omitempty"`

	// Atributos compartidos
	Category string `json:"category,omitempty"`
	Vendor   string `json:"vendor,omitempty"`

	// Atributos de cliente (vista de clientes / drilldown de estilo)
	Territory        string `json:"territory,omitempty"`
	CustomerCategory string `json:"customer_category,omitempty"`

	SalesUnits   decimal.Decimal `json:"sales_units"`
	Returns      decimal.Decimal `json:"returns"`
	NetUnits     decimal.Decimal `json:"net_units"`
	SalesDollars decimal.Decimal `json:"sales_dollars"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`

	// GMPct ponderado: GrossProfit del grupo / RetailTotal del grupo.
	// Inválido cuando el retail total del grupo es 0 (excluido de promedios).
	GMPct       decimal.NullDecimal `json:"gm_pct"`
	retailTotal decimal.Decimal

	// FlaggedRecords registros del grupo enriquecidos con costo 0 por falta de override.
	FlaggedRecords int `json:"flagged_records,omitempty"`
}

// AggregateByStyle agrupa por estilo y suma métricas (vista de estilos y
// drilldown de cliente).
func AggregateByStyle(records []EnrichedRecord) []Group {
	return aggregate(records, func(r EnrichedRecord) (key, name string) {
		return r.Style, r.Style
	}, func(g *Group, r EnrichedRecord) {
		if g.MaterialDesc == "" {
			g.MaterialDesc = r.MaterialDesc
			g.ColorDesc = r.ColorDesc
			g.Category = r.Category
			g.Vendor = r.Vendor
		}
	})
}

// AggregateByCustomer agrupa por customer_id (vista de clientes y drilldown
// de estilo). El customer_id es la clave estable de desempate; el nombre se
// conserva para display.
func AggregateByCustomer(records []EnrichedRecord) []Group {
	return aggregate(records, func(r EnrichedRecord) (key, name string) {
		return r.CustomerID, r.CustomerName
	}, func(g *Group, r EnrichedRecord) {
		if g.Territory == "" {
			g.Territory = r.Territory
			g.CustomerCategory = r.CustomerCategory
			g.Category = r.Category
			g.Vendor = r.Vendor
		}
	})
}

func aggregate(
	records []EnrichedRecord,
	keyFn func(EnrichedRecord) (string, string),
	attrs func(*Group, EnrichedRecord),
) []Group {
	byKey := make(map[string]*Group)
	order := make([]string, 0)

	for _, r := range records {
		key, name := keyFn(r)
		g, ok := byKey[key]
		if !ok {
			g = &Group{Key: key, Name: name}
			byKey[key] = g
			order = append(order, key)
		}
		attrs(g, r)

		g.SalesUnits = g.SalesUnits.Add(r.SalesUnits)
		g.Returns = g.Returns.Add(r.Returns)
		g.NetUnits = g.NetUnits.Add(r.NetUnits)
		g.SalesDollars = g.SalesDollars.Add(r.SalesDollars)
		g.GrossProfit = g.GrossProfit.Add(r.GrossProfit)
		g.retailTotal = g.retailTotal.Add(r.Retail)
		if r.CostFlagged {
			g.FlaggedRecords++
		}
	}

	groups := make([]Group, 0, len(byKey))
	for _, key := range order {
		g := byKey[key]
		// GM% ponderado del grupo: profit / retail-total, no promedio simple
		// de gm por transacción (evita el sesgo de transacciones chicas).
		if g.retailTotal.IsPositive() {
			g.GMPct = decimal.NullDecimal{
				Decimal: g.GrossProfit.Div(g.retailTotal),
				Valid:   true,
			}
		}
		groups = append(groups, *g)
	}
	return groups
}

// Rank ordena por sales_units descendente con desempate por Key ascendente
// (orden total determinista) y asigna rank 1..N. La clave de orden es fija:
// nunca se ordena por sales_dollars aunque también se calcule y muestre.
func Rank(groups []Group) []Group {
	ranked := make([]Group, len(groups))
	copy(ranked, groups)

	sort.SliceStable(ranked, func(i, j int) bool {
		cmp := ranked[i].SalesUnits.Cmp(ranked[j].SalesUnits)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Key < ranked[j].Key
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Top trunca el ranking a los primeros limit grupos (los ranks ya asignados
// se conservan).
func Top(groups []Group, limit int) []Group {
	if limit <= 0 || len(groups) <= limit {
		return groups
	}
	return groups[:limit]
}
