// Package reporting contiene los casos de uso del reporte Top 40: las dos
// vistas principales (estilos y clientes) y los dos drilldowns cruzados. El
// flujo es siempre el mismo: cache → transacciones del ERP → maestros en
// paralelo → enriquecimiento → agregación → ranking.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/domain"
	"github.com/drewshoe/top40-api/internal/domain/entity"
	"github.com/drewshoe/top40-api/internal/domain/report"
)

const (
	dateLayout = "2006-01-02"

	// Reintentos acotados ante fallos de transporte. Un fallo de auth o una
	// respuesta malformada NO se reintenta: reintentarlos no cambia el resultado.
	maxTransportRetries = 2
	retryBackoff        = 500 * time.Millisecond
)

// UseCase orquesta la generación de reportes contra el ERP.
type UseCase struct {
	gateway  ports.ERPGateway
	cache    ports.ReportCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. El cache puede ser el driver noop.
func NewUseCase(gateway ports.ERPGateway, reportCache ports.ReportCache, cacheTTL time.Duration, log zerolog.Logger) *UseCase {
	return &UseCase{
		gateway:  gateway,
		cache:    reportCache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// TestConnection verifica alcance y credenciales contra el ERP.
func (uc *UseCase) TestConnection(ctx context.Context) error {
	return uc.gateway.TestConnection(ctx)
}

// GetTop40Styles reporte principal: los 40 estilos con más unidades vendidas
// en la ventana, con filtros opcionales.
func (uc *UseCase) GetTop40Styles(ctx context.Context, req dto.ReportRequest) (*dto.ReportTableDTO, error) {
	return uc.run(ctx, dto.ViewStyles, req, ports.TransactionQuery{}, report.AggregateByStyle, report.TopLimit)
}

// GetTop40Customers reporte principal: los 40 clientes con más unidades
// compradas en la ventana.
func (uc *UseCase) GetTop40Customers(ctx context.Context, req dto.ReportRequest) (*dto.ReportTableDTO, error) {
	return uc.run(ctx, dto.ViewCustomers, req, ports.TransactionQuery{}, report.AggregateByCustomer, report.TopLimit)
}

// DrilldownStyle todos los clientes que compraron el estilo dado, rankeados.
// Independiente del Top 40: el estilo no necesita figurar en el ranking
// principal para admitir drilldown.
func (uc *UseCase) DrilldownStyle(ctx context.Context, style string, req dto.ReportRequest) (*dto.ReportTableDTO, error) {
	if style == "" {
		return nil, fmt.Errorf("reporte: estilo vacío: %w", domain.ErrInvalidInput)
	}
	view := "style:" + style + ":" + dto.ViewCustomers
	return uc.run(ctx, view, req, ports.TransactionQuery{Style: style}, report.AggregateByCustomer, 0)
}

// DrilldownCustomer todos los estilos que compró el cliente dado, rankeados.
func (uc *UseCase) DrilldownCustomer(ctx context.Context, customerID string, req dto.ReportRequest) (*dto.ReportTableDTO, error) {
	if customerID == "" {
		return nil, fmt.Errorf("reporte: cliente vacío: %w", domain.ErrInvalidInput)
	}
	view := "customer:" + customerID + ":" + dto.ViewStyles
	return uc.run(ctx, view, req, ports.TransactionQuery{Customer: customerID}, report.AggregateByStyle, 0)
}

// RunSavedSearch passthrough hacia el ERP para saved searches ad hoc.
func (uc *UseCase) RunSavedSearch(ctx context.Context, searchID string, filters map[string]string) ([]map[string]any, error) {
	if searchID == "" {
		return nil, fmt.Errorf("reporte: search_id vacío: %w", domain.ErrInvalidInput)
	}
	raw, err := uc.gateway.ExecuteSavedSearch(ctx, searchID, filters)
	if err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// run flujo común de las cuatro operaciones. limit 0 significa sin truncar
// (drilldowns); las vistas principales truncan a TopLimit.
func (uc *UseCase) run(
	ctx context.Context,
	view string,
	req dto.ReportRequest,
	base ports.TransactionQuery,
	aggregateFn func([]report.EnrichedRecord) []report.Group,
	limit int,
) (*dto.ReportTableDTO, error) {
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey(view, req)
	if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
		// Un backend de cache caído no tumba el reporte: se recalcula.
		uc.log.Warn().Err(err).Str("view", view).Msg("cache get falló, se recalcula el reporte")
	} else if ok {
		uc.log.Debug().Str("view", view).Msg("reporte servido desde cache")
		return cached, nil
	}

	q := base
	q.StartDate = req.StartDate
	q.EndDate = req.EndDate
	q.TransactionType = entity.TransactionTypeInvoice
	// Brand se resuelve en el ERP; el resto de filtros se aplica localmente
	// en el enriquecimiento para garantizar la semántica filtrar-antes-de-agregar.
	q.Brand = report.Active(req.Brand)

	var txs []entity.Transaction
	err := uc.withRetry(ctx, "get_sales_transactions", func() error {
		var err error
		txs, err = uc.gateway.GetSalesTransactions(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	md, err := uc.loadMasterData(ctx, txs)
	if err != nil {
		return nil, err
	}

	filters := report.Filters{
		Category:  report.Active(req.Category),
		Vendor:    report.Active(req.Vendor),
		Territory: report.Active(req.Territory),
	}
	records, quality := report.Enrich(txs, md, filters)
	if quality.Total() > 0 {
		uc.log.Info().
			Str("view", view).
			Int("missing_item", quality.MissingItem).
			Int("missing_customer", quality.MissingCustomer).
			Int("missing_cost_override", quality.MissingCostOverride).
			Int("retail_fallback", quality.RetailFallback).
			Msg("correcciones aplicadas durante el enriquecimiento")
	}

	ranked := report.Rank(aggregateFn(records))
	if limit > 0 {
		ranked = report.Top(ranked, limit)
	}

	table := dto.NewReportTable(view, req, ranked, records, quality)
	if err := uc.cache.Set(ctx, key, table, uc.cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("view", view).Msg("cache set falló, el reporte se sirve igual")
	}
	return table, nil
}

// withRetry reintenta fn solo ante ErrTransportFailure, con backoff lineal y
// respetando la cancelación del contexto.
func (uc *UseCase) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrTransportFailure) || attempt >= maxTransportRetries {
			return err
		}

		delay := time.Duration(attempt+1) * retryBackoff
		uc.log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("fallo de transporte contra el ERP, reintentando")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w: %v", op, domain.ErrTransportFailure, ctx.Err())
		case <-time.After(delay):
		}
	}
}

// validateRange valida formato YYYY-MM-DD y que el inicio no sea posterior al fin.
func validateRange(start, end string) error {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("reporte: start_date %q: %w", start, domain.ErrInvalidInput)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("reporte: end_date %q: %w", end, domain.ErrInvalidInput)
	}
	if e.Before(s) {
		return fmt.Errorf("reporte: rango invertido %s..%s: %w", start, end, domain.ErrInvalidInput)
	}
	return nil
}
