// Package dto define los contratos de entrada/salida de la capa de
// aplicación: lo que viaja por HTTP y lo que se cachea, desacoplado de las
// entidades del dominio.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/drewshoe/top40-api/internal/domain/report"
	"github.com/drewshoe/top40-api/pkg/format"
)

// Vistas soportadas por el reporte Top 40.
const (
	ViewStyles    = "styles"
	ViewCustomers = "customers"
)

// ReportRequest parámetros de un reporte o drilldown. Las fechas van en
// YYYY-MM-DD; los filtros vacíos o con el centinela "All" no restringen.
type ReportRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Category  []string `json:"category,omitempty"`
	Vendor    []string `json:"vendor,omitempty"`
	Brand     []string `json:"brand,omitempty"`
	Territory []string `json:"territory,omitempty"`
}

// ReportRow una fila del reporte ya lista para presentar. Key es el estilo o
// el customer id según la vista; los montos van como decimal (serializan como
// string JSON) y GMPct ya viene formateado en escala 0-100.
type ReportRow struct {
	Rank             int             `json:"rank"`
	Key              string          `json:"key"`
	Name             string          `json:"name,omitempty"`
	MaterialDesc     string          `json:"material_desc,omitempty"`
	ColorDesc        string          `json:"color_desc,omitempty"`
	Category         string          `json:"category,omitempty"`
	Vendor           string          `json:"vendor,omitempty"`
	Territory        string          `json:"territory,omitempty"`
	CustomerCategory string          `json:"customer_category,omitempty"`
	SalesUnits       decimal.Decimal `json:"sales_units"`
	NetUnits         decimal.Decimal `json:"net_units"`
	SalesDollars     decimal.Decimal `json:"sales_dollars"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	GMPct            string          `json:"gm_pct"` // "47.5%"; sin retail en el grupo queda "0.0%"
	CostFlagged      bool            `json:"cost_flagged,omitempty"`
}

// ReportTotals KPIs agregados sobre el universo filtrado completo (no solo
// sobre las filas del Top 40).
type ReportTotals struct {
	SalesUnits   decimal.Decimal `json:"sales_units"`
	NetUnits     decimal.Decimal `json:"net_units"`
	SalesDollars decimal.Decimal `json:"sales_dollars"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	GMPct        string          `json:"gm_pct"`
}

// DataQualityDTO contadores de correcciones aplicadas durante el enrich.
type DataQualityDTO struct {
	MissingItem         int `json:"missing_item"`
	MissingCustomer     int `json:"missing_customer"`
	MissingCostOverride int `json:"missing_cost_override"`
	ZeroCostFlagged     int `json:"zero_cost_flagged"`
	RetailFallback      int `json:"retail_fallback"`
	Total               int `json:"total"`
}

// ReportTableDTO respuesta completa de un reporte: metadatos de la corrida,
// filas rankeadas, KPIs y calidad de datos. Es también la unidad de cacheo.
type ReportTableDTO struct {
	View        string         `json:"view"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	GeneratedAt time.Time      `json:"generated_at"`
	RowCount    int            `json:"row_count"`
	Rows        []ReportRow    `json:"rows"`
	Totals      ReportTotals   `json:"totals"`
	Quality     DataQualityDTO `json:"quality"`
}

// ErrorResponse cuerpo estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewReportTable arma el DTO a partir de los grupos ya rankeados y de los
// registros enriquecidos completos (los totales se calculan sobre todos los
// registros, no solo sobre las filas presentadas).
func NewReportTable(view string, req ReportRequest, rows []report.Group, all []report.EnrichedRecord, quality report.DataQuality) *ReportTableDTO {
	out := &ReportTableDTO{
		View:        view,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: time.Now().UTC(),
		RowCount:    len(rows),
		Rows:        make([]ReportRow, 0, len(rows)),
		Totals:      totalsFrom(all),
		Quality: DataQualityDTO{
			MissingItem:         quality.MissingItem,
			MissingCustomer:     quality.MissingCustomer,
			MissingCostOverride: quality.MissingCostOverride,
			ZeroCostFlagged:     quality.ZeroCostFlagged,
			RetailFallback:      quality.RetailFallback,
			Total:               quality.Total(),
		},
	}

	for _, g := range rows {
		out.Rows = append(out.Rows, ReportRow{
			Rank:             g.Rank,
			Key:              g.Key,
			Name:             g.Name,
			MaterialDesc:     g.MaterialDesc,
			ColorDesc:        g.ColorDesc,
			Category:         g.Category,
			Vendor:           g.Vendor,
			Territory:        g.Territory,
			CustomerCategory: g.CustomerCategory,
			SalesUnits:       g.SalesUnits,
			NetUnits:         g.NetUnits,
			SalesDollars:     g.SalesDollars,
			GrossProfit:      g.GrossProfit,
			GMPct:            format.Percent(g.GMPct),
			CostFlagged:      g.FlaggedRecords > 0,
		})
	}
	return out
}

func totalsFrom(records []report.EnrichedRecord) ReportTotals {
	var units, net, dollars, profit, retail decimal.Decimal
	for _, r := range records {
		units = units.Add(r.SalesUnits)
		net = net.Add(r.NetUnits)
		dollars = dollars.Add(r.SalesDollars)
		profit = profit.Add(r.GrossProfit)
		retail = retail.Add(r.Retail)
	}

	var gm decimal.NullDecimal
	if retail.IsPositive() {
		gm = decimal.NullDecimal{Decimal: profit.Div(retail), Valid: true}
	}
	return ReportTotals{
		SalesUnits:   units,
		NetUnits:     net,
		SalesDollars: dollars,
		GrossProfit:  profit,
		GMPct:        format.Percent(gm),
	}
}
