package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/drewshoe/top40-api/internal/domain"
	"github.com/drewshoe/top40-api/internal/domain/entity"
	"github.com/drewshoe/top40-api/internal/domain/report"
)

// loadMasterData trae ítems, clientes y overrides de costo/retail para los
// IDs referenciados por las transacciones. Las tres llamadas van en paralelo;
// cada una con su propio reintento de transporte.
func (uc *UseCase) loadMasterData(ctx context.Context, txs []entity.Transaction) (report.MasterData, error) {
	itemIDs, customerIDs := referencedIDs(txs)

	type itemsResult struct {
		items []entity.Item
		err   error
	}
	type customersResult struct {
		customers []entity.Customer
		err       error
	}
	type costRetailResult struct {
		overrides map[string]entity.CostRetail
		err       error
	}

	itemsCh := make(chan itemsResult, 1)
	customersCh := make(chan customersResult, 1)
	costRetailCh := make(chan costRetailResult, 1)

	go func() {
		var items []entity.Item
		err := uc.withRetry(ctx, "get_item_master", func() error {
			var err error
			items, err = uc.gateway.GetItemMaster(ctx, itemIDs)
			return err
		})
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		var customers []entity.Customer
		err := uc.withRetry(ctx, "get_customer_master", func() error {
			var err error
			customers, err = uc.gateway.GetCustomerMaster(ctx, customerIDs)
			return err
		})
		customersCh <- customersResult{customers, err}
	}()
	go func() {
		var overrides map[string]entity.CostRetail
		err := uc.withRetry(ctx, "get_cost_retail_data", func() error {
			var err error
			overrides, err = uc.gateway.GetCostRetailData(ctx, itemIDs)
			return err
		})
		costRetailCh <- costRetailResult{overrides, err}
	}()

	items := <-itemsCh
	customers := <-customersCh
	costRetail := <-costRetailCh

	if items.err != nil {
		return report.MasterData{}, fmt.Errorf("maestro de ítems: %w", items.err)
	}
	if customers.err != nil {
		return report.MasterData{}, fmt.Errorf("maestro de clientes: %w", customers.err)
	}
	if costRetail.err != nil {
		return report.MasterData{}, fmt.Errorf("overrides de costo/retail: %w", costRetail.err)
	}

	md := report.MasterData{
		Items:      make(map[string]entity.Item, len(items.items)),
		Customers:  make(map[string]entity.Customer, len(customers.customers)),
		CostRetail: costRetail.overrides,
	}
	if md.CostRetail == nil {
		md.CostRetail = map[string]entity.CostRetail{}
	}
	for _, it := range items.items {
		md.Items[it.ItemID] = it
	}
	for _, c := range customers.customers {
		md.Customers[c.CustomerID] = c
	}
	return md, nil
}

// referencedIDs IDs únicos de ítem y cliente en orden determinista, para que
// los requests a maestros sean acotados y reproducibles.
func referencedIDs(txs []entity.Transaction) (itemIDs, customerIDs []string) {
	itemSet := make(map[string]struct{})
	customerSet := make(map[string]struct{})
	for _, tx := range txs {
		if tx.ItemID != "" {
			itemSet[tx.ItemID] = struct{}{}
		}
		if tx.CustomerID != "" {
			customerSet[tx.CustomerID] = struct{}{}
		}
	}

	itemIDs = make([]string, 0, len(itemSet))
	for id := range itemSet {
		itemIDs = append(itemIDs, id)
	}
	customerIDs = make([]string, 0, len(customerSet))
	for id := range customerSet {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(itemIDs)
	sort.Strings(customerIDs)
	return itemIDs, customerIDs
}

// decodeRows decodifica filas crudas de una saved search a mapas genéricos.
func decodeRows(raw []json.RawMessage) ([]map[string]any, error) {
	rows := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		var row map[string]any
		if err := json.Unmarshal(r, &row); err != nil {
			return nil, fmt.Errorf("saved search: fila no decodifica: %w", domain.ErrMalformedResponse)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
