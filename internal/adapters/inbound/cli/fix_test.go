package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixCommand_DryRunShowsPlans(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "fix", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "OrderStore")
	assert.Contains(t, out, "OrderStoreRepository")
	assert.Contains(t, out, "PlaceOrderHandler")
	assert.Contains(t, out, "OrderSummaryDto")

	store := readFixtureFile(t, dir, "internal/orders/domain/store.go")
	assert.NotContains(t, store, "OrderStoreRepository", "dry run never edits files")
}

func TestFixCommand_DryRunJSON(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "fix", dir, "--dry-run", "--json")
	require.NoError(t, err)

	var plans []struct {
		CurrentName string `json:"current_name"`
		TargetName  string `json:"target_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 7)

	targets := map[string]string{}
	for _, p := range plans {
		targets[p.CurrentName] = p.TargetName
	}
	assert.Equal(t, "OrderStoreRepository", targets["OrderStore"])
	assert.Equal(t, "RefundRulesValidator", targets["RefundRules"])
	assert.Equal(t, "PlaceOrderHandler", targets["PlaceOrder"])
	assert.Equal(t, "PendingOrdersSpecification", targets["PendingOrders"])
	assert.Equal(t, "InvoiceManagerService", targets["InvoiceManager"])
	assert.Equal(t, "InvoiceMappingConfiguration", targets["InvoiceMapping"])
	assert.Equal(t, "OrderSummaryDto", targets["OrderSummary"])
}

func TestFixCommand_RuleFilter(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "fix", dir, "--dry-run", "--json", "--rule", "MDY001")
	require.NoError(t, err)

	var plans []struct {
		CurrentName string `json:"current_name"`
		TargetName  string `json:"target_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plans))
	require.Len(t, plans, 1)
	assert.Equal(t, "OrderStore", plans[0].CurrentName)
	assert.Equal(t, "OrderStoreRepository", plans[0].TargetName)
}

func TestFixCommand_AppliesRenames(t *testing.T) {
	dir := copyFixture(t)
	out, err := runCommand(t, "fix", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 7 renames.")

	store := readFixtureFile(t, dir, "internal/orders/domain/store.go")
	assert.Contains(t, store, "OrderStoreRepository")
	assert.NotContains(t, store, "OrderStore{")

	handler := readFixtureFile(t, dir, "internal/orders/application/place_order.go")
	assert.Contains(t, handler, "PlaceOrderHandler")

	summary := readFixtureFile(t, dir, "internal/orders/contracts/summary.go")
	assert.Contains(t, summary, "OrderSummaryDto")

	// References in other modules are rewritten too.
	invoice := readFixtureFile(t, dir, "internal/billing/domain/invoice.go")
	assert.Contains(t, invoice, "OrderSummaryDto")
}

func TestFixCommand_NothingLeftAfterApply(t *testing.T) {
	dir := copyFixture(t)
	_, err := runCommand(t, "fix", dir)
	require.NoError(t, err)

	out, err := runCommand(t, "fix", dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix.")
}

func readFixtureFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
