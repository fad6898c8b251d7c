package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewshoe/top40-api/internal/application/dto"
	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/application/reporting"
	"github.com/drewshoe/top40-api/internal/domain"
	"github.com/drewshoe/top40-api/internal/domain/entity"
	"github.com/drewshoe/top40-api/internal/infrastructure/cache"
	infrapdf "github.com/drewshoe/top40-api/internal/infrastructure/pdf"
	apphttp "github.com/drewshoe/top40-api/internal/interfaces/http"
)

// fakeGateway gateway ERP en memoria para los tests de la API completa.
// err, si está seteado, se devuelve en la consulta de transacciones.
type fakeGateway struct {
	err error
	txs []entity.Transaction
}

func (f *fakeGateway) TestConnection(context.Context) error { return f.err }

func (f *fakeGateway) GetSalesTransactions(context.Context, ports.TransactionQuery) ([]entity.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.txs, nil
}

func (f *fakeGateway) GetItemMaster(context.Context, []string) ([]entity.Item, error) {
	return []entity.Item{
		{ItemID: "IT-1", Style: "ALFA", MaterialDesc: "LEATHER", ColorDesc: "BROWN", Category: "BOOTS", Vendor: "ACME", RetailPrice: mustDec("120")},
	}, nil
}

func (f *fakeGateway) GetCustomerMaster(context.Context, []string) ([]entity.Customer, error) {
	return []entity.Customer{
		{CustomerID: "CU-1", CustomerName: "SHOE BARN", Territory: "EAST"},
	}, nil
}

func (f *fakeGateway) GetCostRetailData(context.Context, []string) (map[string]entity.CostRetail, error) {
	return map[string]entity.CostRetail{
		"IT-1": {
			Cost:   decimal.NullDecimal{Decimal: mustDec("40"), Valid: true},
			Retail: decimal.NullDecimal{Decimal: mustDec("100"), Valid: true},
		},
	}, nil
}

func (f *fakeGateway) ExecuteSavedSearch(context.Context, string, map[string]string) ([]json.RawMessage, error) {
	return []json.RawMessage{json.RawMessage(`{"style":"ALFA"}`)}, f.err
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func defaultGateway() *fakeGateway {
	return &fakeGateway{
		txs: []entity.Transaction{
			{TransactionID: "TX-1", TransactionType: entity.TransactionTypeInvoice, CustomerID: "CU-1", ItemID: "IT-1", SalesUnits: mustDec("10"), SalesDollars: mustDec("1000")},
		},
	}
}

// buildAPI levanta la app con el router completo y un gateway falso.
func buildAPI(gw ports.ERPGateway) *fiber.App {
	app := fiber.New()
	uc := reporting.NewUseCase(gw, cache.Noop{}, 5*time.Minute, zerolog.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		ReportUC:  uc,
		PDFGen:    infrapdf.NewMarotoReportGenerator(),
		JWTSecret: testJWTSecret,
	})
	return app
}

func apiRequest(t *testing.T, app *fiber.App, method, target, role string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const reportURL = "/api/reports/top40/styles?start_date=2026-01-01&end_date=2026-01-31"

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_Top40Styles_OK(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet, reportURL, apphttp.RoleSales)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var table dto.ReportTableDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&table))
	assert.Equal(t, "styles", table.View)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "ALFA", table.Rows[0].Key)
	assert.Equal(t, 1, table.Rows[0].Rank)
	assert.Equal(t, "60.0%", table.Rows[0].GMPct)
}

func TestReports_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet, reportURL, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReports_FechasInvalidas_Retorna400(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet,
		"/api/reports/top40/styles?start_date=31-01-2026&end_date=2026-01-31", apphttp.RoleSales)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_INPUT")
}

func TestReports_FalloDeAuthERP_Retorna502(t *testing.T) {
	gw := defaultGateway()
	gw.err = fmt.Errorf("erp: HTTP 401: %w", domain.ErrAuthFailure)
	app := buildAPI(gw)

	resp := apiRequest(t, app, http.MethodGet, reportURL, apphttp.RoleSales)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ERP_AUTH_FAILURE")
}

func TestReports_ErrorDeScript_Retorna502ConMensaje(t *testing.T) {
	gw := defaultGateway()
	gw.err = &domain.ErpScriptError{Action: "get_sales_transactions", Message: "Saved search not found"}
	app := buildAPI(gw)

	resp := apiRequest(t, app, http.MethodGet, reportURL, apphttp.RoleSales)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ERP_SCRIPT_ERROR")
	assert.Contains(t, string(body), "Saved search not found",
		"el mensaje textual del ERP llega al cliente para diagnóstico")
}

func TestReports_Drilldown_OK(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet,
		"/api/reports/styles/ALFA/customers?start_date=2026-01-01&end_date=2026-01-31", apphttp.RoleMerchandising)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var table dto.ReportTableDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&table))
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "CU-1", table.Rows[0].Key)
	assert.Equal(t, "SHOE BARN", table.Rows[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exports
// ──────────────────────────────────────────────────────────────────────────────

func TestExports_CSV_DescargaConNombreTimestampeado(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet,
		"/api/exports/top40/styles?start_date=2026-01-01&end_date=2026-01-31&format=csv", apphttp.RoleSales)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	disposition := resp.Header.Get("Content-Disposition")
	assert.Contains(t, disposition, "top_40_styles_")
	assert.Contains(t, disposition, ".csv")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "rank,key,name")
	assert.Contains(t, string(body), "ALFA")
}

func TestExports_PDF_DevuelveDocumento(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet,
		"/api/exports/top40/styles?start_date=2026-01-01&end_date=2026-01-31&format=pdf", apphttp.RoleSales)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, len(body) > 4 && string(body[:4]) == "%PDF", "el payload debe ser un PDF")
}

func TestExports_FormatoDesconocido_Retorna400(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet,
		"/api/exports/top40/styles?start_date=2026-01-01&end_date=2026-01-31&format=xlsx", apphttp.RoleSales)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// ERP
// ──────────────────────────────────────────────────────────────────────────────

func TestERP_TestConnection_OK(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodGet, "/api/erp/test-connection", apphttp.RoleAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestERP_TestConnection_ERPInalcanzable_Retorna504(t *testing.T) {
	gw := defaultGateway()
	gw.err = fmt.Errorf("erp: %w: connection refused", domain.ErrTransportFailure)
	app := buildAPI(gw)

	resp := apiRequest(t, app, http.MethodGet, "/api/erp/test-connection", apphttp.RoleAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ERP_UNREACHABLE")
}

func TestERP_SavedSearch_SoloAdmin(t *testing.T) {
	app := buildAPI(defaultGateway())
	resp := apiRequest(t, app, http.MethodPost, "/api/erp/saved-search", apphttp.RoleSales)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
