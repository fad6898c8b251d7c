// Package erp implementa el cliente HTTP hacia el endpoint RESTlet del ERP:
// POSTs firmados con OAuth 1.0 HMAC-SHA256, un envelope JSON por respuesta y
// mapeo de fallos a los errores tipados del dominio.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drewshoe/top40-api/internal/application/ports"
	"github.com/drewshoe/top40-api/internal/domain"
	"github.com/drewshoe/top40-api/internal/domain/entity"
	"github.com/drewshoe/top40-api/internal/infrastructure/erp/signer"
	"github.com/drewshoe/top40-api/pkg/config"
)

// URL estándar del RESTlet derivada del account id (minúsculas).
const defaultRestletURLFormat = "https://%s.restlets.api.netsuite.com/app/site/hosting/restlet.nl"

// maxResponseBytes techo de lectura del body (respuestas de maestros completos
// pueden ser grandes, pero acotadas).
const maxResponseBytes = 16 << 20

// Client cliente del RESTlet. Cada llamada es un POST único y síncrono con
// timeout acotado; el cliente NO reintenta (la política de reintentos es del
// caller). Seguro para uso concurrente: no hay estado mutable tras construir.
type Client struct {
	restletURL string
	signer     *signer.Signer
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente a partir de la configuración. Las
// credenciales viven solo acá y en el firmador; no hay estado global.
// AccountID se normaliza como espera el ERP: el realm es el id en mayúsculas
// tal cual (las cuentas sandbox conservan el '_'), mientras que la URL
// derivada usa el id en minúsculas con '_' → '-' (salvo URL custom).
func NewClient(cfg config.ERPConfig, log zerolog.Logger) *Client {
	realm := strings.ToUpper(cfg.AccountID)

	restletURL := cfg.RestletURL
	if restletURL == "" {
		urlID := strings.ToLower(strings.ReplaceAll(realm, "_", "-"))
		restletURL = fmt.Sprintf(defaultRestletURLFormat, urlID)
	}

	sg := signer.New(signer.Credentials{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		TokenID:        cfg.TokenID,
		TokenSecret:    cfg.TokenSecret,
		Realm:          realm,
	})

	return &Client{
		restletURL: restletURL,
		signer:     sg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		log:        log,
	}
}

var _ ports.ERPGateway = (*Client)(nil)

// RestletURL devuelve la URL efectiva del endpoint (derivada o configurada).
func (c *Client) RestletURL() string {
	return c.restletURL
}

// TestConnection verifica que el endpoint sea alcanzable y que la
// autenticación sea aceptada.
func (c *Client) TestConnection(ctx context.Context) error {
	return c.do(ctx, actionTestConnection, testConnectionRequest{Action: actionTestConnection}, nil)
}

// GetSalesTransactions trae las transacciones de venta de la ventana dada.
func (c *Client) GetSalesTransactions(ctx context.Context, q ports.TransactionQuery) ([]entity.Transaction, error) {
	req := salesTransactionsRequest{
		Action:    actionGetSalesTransactions,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Filters: transactionFilters{
			TransactionType: q.TransactionType,
			Category:        q.Category,
			Vendor:          q.Vendor,
			Brand:           q.Brand,
			Territory:       q.Territory,
			Style:           q.Style,
			Customer:        q.Customer,
		},
	}
	var txs []entity.Transaction
	if err := c.do(ctx, actionGetSalesTransactions, req, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GetItemMaster trae el maestro de ítems; itemIDs vacío significa todos.
func (c *Client) GetItemMaster(ctx context.Context, itemIDs []string) ([]entity.Item, error) {
	req := itemMasterRequest{Action: actionGetItemMaster, ItemIDs: nonNil(itemIDs)}
	var items []entity.Item
	if err := c.do(ctx, actionGetItemMaster, req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCustomerMaster trae el maestro de clientes; customerIDs vacío significa todos.
func (c *Client) GetCustomerMaster(ctx context.Context, customerIDs []string) ([]entity.Customer, error) {
	req := customerMasterRequest{Action: actionGetCustomerMaster, CustomerIDs: nonNil(customerIDs)}
	var customers []entity.Customer
	if err := c.do(ctx, actionGetCustomerMaster, req, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCostRetailData trae el override de costo/retail de Merchandising como
// mapa item_id → {cost, retail}.
func (c *Client) GetCostRetailData(ctx context.Context, itemIDs []string) (map[string]entity.CostRetail, error) {
	req := costRetailRequest{Action: actionGetCostRetailData, ItemIDs: nonNil(itemIDs)}
	overrides := make(map[string]entity.CostRetail)
	if err := c.do(ctx, actionGetCostRetailData, req, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// ExecuteSavedSearch ejecuta una saved search del ERP y devuelve las filas
// crudas (el esquema depende de la search; el caller decide cómo decodificar).
func (c *Client) ExecuteSavedSearch(ctx context.Context, searchID string, filters map[string]string) ([]json.RawMessage, error) {
	if filters == nil {
		filters = map[string]string{}
	}
	req := savedSearchRequest{Action: actionExecuteSavedSearch, SearchID: searchID, Filters: filters}
	var rows []json.RawMessage
	if err := c.do(ctx, actionExecuteSavedSearch, req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ── transporte ────────────────────────────────────────────────────────────────

// do ejecuta un POST firmado y decodifica el envelope. Mapeo de fallos:
//   - 401/403                  → ErrAuthFailure (no reintentable)
//   - error de red/timeout/5xx → ErrTransportFailure (reintentable acotado)
//   - envelope status "error"  → ErpScriptError con el mensaje textual del ERP
//   - body no parseable        → ErrMalformedResponse (se loggea tamaño, nunca
//     el payload completo: puede contener datos sensibles)
func (c *Client) do(ctx context.Context, action string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("erp: serializar request %q: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restletURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("erp: crear request %q: %w", action, err)
	}

	// Cada request lleva firma fresca: nonce y timestamp nuevos.
	authHeader := c.signer.AuthorizationHeader(http.MethodPost, c.restletURL, signer.Nonce(), time.Now().Unix())
	req.Header.Set("Authorization", authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("erp: %s: %w: %v", action, domain.ErrTransportFailure, ctx.Err())
		}
		return fmt.Errorf("erp: %s: %w: %v", action, domain.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("erp: %s: leer respuesta: %w: %v", action, domain.ErrTransportFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("erp: %s: HTTP %d: %w", action, resp.StatusCode, domain.ErrAuthFailure)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("erp: %s: HTTP %d: %w", action, resp.StatusCode, domain.ErrTransportFailure)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Error().
			Str("action", action).
			Int("payload_bytes", len(raw)).
			Msg("respuesta del ERP no parseable como envelope JSON")
		return fmt.Errorf("erp: %s: %w", action, domain.ErrMalformedResponse)
	}

	if env.Status != statusSuccess {
		return &domain.ErpScriptError{Action: action, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.log.Error().
				Str("action", action).
				Int("payload_bytes", len(raw)).
				Msg("data del envelope no decodifica al tipo esperado")
			return fmt.Errorf("erp: %s: data: %w", action, domain.ErrMalformedResponse)
		}
	}

	c.log.Debug().
		Str("action", action).
		Int("count", env.Count).
		Dur("elapsed", time.Since(started)).
		Msg("llamada al ERP completada")
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
