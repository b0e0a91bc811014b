package accounting_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/accounting"
	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
	deskHttp "github.com/MrJamesThe3rd/deskboard/internal/http"
	"github.com/MrJamesThe3rd/deskboard/internal/http/records"
	"github.com/MrJamesThe3rd/deskboard/internal/http/summary"
	"github.com/MrJamesThe3rd/deskboard/internal/logging"
	"github.com/MrJamesThe3rd/deskboard/internal/money"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

func TestSummarize(t *testing.T) {
	txs := []accounting.Transaction{
		{Type: accounting.TypeIncome, Amount: money.FromInt(1000)},
		{Type: accounting.TypeExpense, Amount: money.FromFloat(-250.25)},
		{Type: accounting.TypeExpense, Amount: money.FromInt(100)},
	}

	got := accounting.Summarize(txs)
	assert.Equal(t, "1000.00", got.Income.Format())
	assert.Equal(t, "350.25", got.Expenses.Format())
	assert.Equal(t, "649.75", got.Net.Format())
	assert.Equal(t, 3, got.Count)

	assert.Equal(t, "0.00", accounting.Summarize(nil).Net.Format())
}

func TestTransactionFields(t *testing.T) {
	var tx accounting.Transaction
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"description": "Office chairs",
		"amount": "349.90",
		"type": "expense",
		"method": "bank_transfer",
		"date": "2026-03-09T10:00:00Z"
	}`), &tx))

	assert.Equal(t, "7", tx.RecordID())
	assert.Equal(t, []string{
		"Office chairs", "expense", "bank_transfer", "349.9", "3/9/2026", "2026-03-09",
	}, accounting.TransactionFields(tx))
}

func TestInvoiceFields(t *testing.T) {
	var inv accounting.Invoice
	require.NoError(t, json.Unmarshal([]byte(`{
		"_id": "inv-042",
		"client_name": "Acme",
		"description": "Audit",
		"invoice_type": "service",
		"amount": 1200,
		"status": "sent",
		"due_date": "2026-04-30"
	}`), &inv))

	assert.Equal(t, "inv-042", inv.RecordID())
	assert.Equal(t, time.April, inv.DueDate.Month())
	assert.Contains(t, accounting.InvoiceFields(inv), "inv-042")
	assert.Contains(t, accounting.InvoiceFields(inv), "Acme")
}

func newLedger(t *testing.T) (*accounting.Ledger, *fakeapi.Store, *logging.Recorder) {
	t.Helper()

	store := fakeapi.NewSeeded(true)
	router := deskHttp.New(records.NewHandler(store), summary.NewHandler(store), nil)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	rec := logging.NewRecorder(slog.LevelDebug)

	l := accounting.NewLedger(resource.NewAPI(srv.URL+"/api"), rec.Logger())
	t.Cleanup(l.Close)

	return l, store, rec
}

func TestLedger_Refresh(t *testing.T) {
	ctx := context.Background()
	l, store, _ := newLedger(t)

	l.Refresh(ctx)

	txs := l.Transactions.Snapshot()
	require.Empty(t, txs.Error)
	assert.Equal(t, 25, txs.TotalItems)
	assert.Len(t, txs.Items, 10)

	invoices := l.Invoices.Snapshot()
	require.Empty(t, invoices.Error)
	assert.Equal(t, 5, invoices.TotalItems)

	revenue, _, net := store.Summary()

	got, errMsg := l.Summary()
	assert.Empty(t, errMsg)
	assert.Equal(t, revenue.StringFixed(2), got.TotalRevenue.Format())
	assert.Equal(t, net.StringFixed(2), got.NetProfit.Format())

	totals := l.Totals()
	assert.Equal(t, 25, totals.Count)
	assert.Equal(t, got.NetProfit.Format(), totals.Net.Format())
}

func TestLedger_DeleteRefreshesSummary(t *testing.T) {
	ctx := context.Background()
	l, store, rec := newLedger(t)

	l.Refresh(ctx)

	before, _ := l.Summary()

	// Transaction 1 is an income of 100.
	res := l.Transactions.Delete(ctx, "1")
	require.True(t, res.Success, res.Error)

	after, errMsg := l.Summary()
	assert.Empty(t, errMsg)
	assert.Equal(t, before.TotalRevenue.Sub(money.FromInt(100)).Format(), after.TotalRevenue.Format())

	state := l.Transactions.Snapshot()
	assert.Equal(t, 24, state.TotalItems)
	assert.False(t, state.Estimated)
	assert.Len(t, store.Records("transactions"), 24)

	_, logged := rec.Find("mutation succeeded")
	assert.True(t, logged)
}

func TestLedger_SummaryFailureKeepsLastValue(t *testing.T) {
	ctx := context.Background()
	l, store, rec := newLedger(t)

	l.Refresh(ctx)

	before, _ := l.Summary()

	store.FailNext("accounting/summary", fakeapi.Failure{Status: http.StatusBadGateway, Message: "upstream down"})

	res := l.Invoices.Delete(ctx, "inv-001")
	require.True(t, res.Success, res.Error)

	after, errMsg := l.Summary()
	assert.Equal(t, before, after)
	assert.Contains(t, errMsg, "upstream down")

	entry, ok := rec.Find("failed to refresh summary")
	require.True(t, ok)
	assert.Equal(t, accounting.SummaryPath, entry.Attrs["resource"])

	assert.Equal(t, 4, l.Invoices.Snapshot().TotalItems)
}
