package erp_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/domain"
	"github.com/drewshoe/top40-api/internal/infrastructure/erp"
	"github.com/drewshoe/top40-api/pkg/config"
)

func testClient(t *testing.T, serverURL string) *erp.Client {
	t.Helper()
	cfg := config.ERPConfig{
		AccountID:      "1234567_SB1",
		ConsumerKey:    "consumer123",
		ConsumerSecret: "secret123",
		TokenID:        "token123",
		TokenSecret:    "tokensecret123",
		RestletURL:     serverURL,
		TimeoutSeconds: 5,
	}
	return erp.NewClient(cfg, zerolog.Nop())
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestNewClient_DerivaURLDesdeAccountID(t *testing.T) {
	cfg := config.ERPConfig{AccountID: "1234567_SB1"}
	c := erp.NewClient(cfg, zerolog.Nop())
	assert.Equal(t,
		"https://1234567-sb1.restlets.api.netsuite.com/app/site/hosting/restlet.nl",
		c.RestletURL(),
		"account id en minúsculas y con '_' → '-' en la URL derivada")
}

func TestNewClient_RespetaURLConfigurada(t *testing.T) {
	cfg := config.ERPConfig{AccountID: "1234567", RestletURL: "https://proxy.interno/restlet"}
	c := erp.NewClient(cfg, zerolog.Nop())
	assert.Equal(t, "https://proxy.interno/restlet", c.RestletURL())
}

func TestGetSalesTransactions_ParseaEnvelopeExitoso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{
			"status": "success",
			"count": 2,
			"data": [
				{"transaction_id":"TX-1","transaction_date":"2026-01-05","transaction_type":"invoice",
				 "customer_id":"CU-1","item_id":"IT-1","sales_units":"10","sales_dollars":"1250.50","returns":"2"},
				{"transaction_id":"TX-2","transaction_date":"2026-01-06","transaction_type":"invoice",
				 "customer_id":"CU-2","item_id":"IT-2","sales_units":"5","sales_dollars":"300","returns":"0"}
			]
		}`))
	}))
	defer srv.Close()

	txs, err := testClient(t, srv.URL).GetSalesTransactions(
		context.Background(), ports.TransactionQuery{StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "TX-1", txs[0].TransactionID)
	assert.Equal(t, "CU-1", txs[0].CustomerID)
	assert.True(t, txs[0].SalesUnits.Equal(decimalFromString(t, "10")))
	assert.True(t, txs[0].SalesDollars.Equal(decimalFromString(t, "1250.50")))
}

func TestDo_EnviaHeaderAuthorizationOAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	require.NoError(t, testClient(t, srv.URL).TestConnection(context.Background()))
	assert.True(t, strings.HasPrefix(gotAuth, `OAuth realm="1234567_SB1", `),
		"el realm es el account id en mayúsculas y conserva el '_' de sandbox; solo la URL usa '-'")
	assert.Contains(t, gotAuth, `oauth_signature_method="HMAC-SHA256"`)
	assert.Contains(t, gotAuth, `oauth_consumer_key="consumer123"`)
	assert.Contains(t, gotAuth, `oauth_signature="`)
}

func TestDo_RequestIDUnicoPorLlamada(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-Id"))
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	require.NoError(t, c.TestConnection(context.Background()))
	require.NoError(t, c.TestConnection(context.Background()))
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

// ── mapeo de errores ──────────────────────────────────────────────────────────

func TestDo_401MapeaAFalloDeAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testClient(t, srv.URL).TestConnection(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAuthFailure))
	assert.False(t, errors.Is(err, domain.ErrTransportFailure),
		"auth inválida no debe confundirse con fallo de transporte")
}

func TestDo_403MapeaAFalloDeAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := testClient(t, srv.URL).TestConnection(context.Background())
	assert.True(t, errors.Is(err, domain.ErrAuthFailure))
}

func TestDo_500MapeaAFalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := testClient(t, srv.URL).TestConnection(context.Background())
	assert.True(t, errors.Is(err, domain.ErrTransportFailure))
}

func TestDo_ServidorCaidoMapeaAFalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado antes de llamar: connection refused

	err := testClient(t, srv.URL).TestConnection(context.Background())
	assert.True(t, errors.Is(err, domain.ErrTransportFailure))
}

func TestDo_ContextoCanceladoMapeaAFalloDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := testClient(t, srv.URL).TestConnection(ctx)
	assert.True(t, errors.Is(err, domain.ErrTransportFailure))
}

func TestDo_EnvelopeErrorPreservaMensajeTextual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"Saved search top40_sales not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GetItemMaster(context.Background(), nil)
	require.Error(t, err)

	var scriptErr *domain.ErpScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, "Saved search top40_sales not found", scriptErr.Message,
		"el mensaje del ERP se preserva textual para diagnóstico")
	assert.Equal(t, "get_item_master", scriptErr.Action)
}

func TestDo_JSONInvalidoMapeaARespuestaMalformada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>Service Unavailable</html>`))
	}))
	defer srv.Close()

	err := testClient(t, srv.URL).TestConnection(context.Background())
	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestDo_DataConTipoInesperadoMapeaARespuestaMalformada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// status success pero data es un objeto donde se espera un array
		w.Write([]byte(`{"status":"success","data":{"no":"es un array"}}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GetItemMaster(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestGetCostRetailData_DecodificaMapaPorItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"IT-1": {"cost":"42.10","retail":"99.99"},
				"IT-2": {"cost":null,"retail":"55.00"}
			}
		}`))
	}))
	defer srv.Close()

	overrides, err := testClient(t, srv.URL).GetCostRetailData(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	require.True(t, overrides["IT-1"].Cost.Valid)
	assert.True(t, overrides["IT-1"].Cost.Decimal.Equal(decimalFromString(t, "42.10")))
	assert.False(t, overrides["IT-2"].Cost.Valid, "cost null queda como valor ausente, no como cero")
	require.True(t, overrides["IT-2"].Retail.Valid)
}

func TestExecuteSavedSearch_DevuelveFilasCrudas(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"status":"success","count":1,"data":[{"col_a":"x","col_b":7}]}`))
	}))
	defer srv.Close()

	rows, err := testClient(t, srv.URL).ExecuteSavedSearch(
		context.Background(), "customsearch_top40", map[string]string{"territory": "EAST"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.JSONEq(t, `{"col_a":"x","col_b":7}`, string(rows[0]))
	assert.Contains(t, gotBody, `"search_id":"customsearch_top40"`)
	assert.Contains(t, gotBody, `"action":"execute_saved_search"`)
}
