package accounting

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/deskboard/internal/money"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

// Summary is the backend's aggregate of the books. The endpoint answers in snake_case.
type Summary struct {
	TotalRevenue  money.Amount `json:"total_revenue"`
	TotalExpenses money.Amount `json:"total_expenses"`
	NetProfit     money.Amount `json:"net_profit"`
}

// FetchSummary reads GET /accounting/summary.
func FetchSummary(ctx context.Context, api *resource.API) resource.DetailResult[Summary] {
	return resource.GetOne[Summary](ctx, api, SummaryPath)
}

// Ledger groups the accounting collections with the backend summary. Deleting a
// transaction or an invoice refreshes the summary before the list is refetched.
type Ledger struct {
	Transactions *resource.Collection[Transaction]
	Invoices     *resource.Collection[Invoice]

	api    *resource.API
	logger *slog.Logger

	mu         sync.Mutex
	summary    Summary
	summaryErr string
}

func NewLedger(api *resource.API, logger *slog.Logger, opts ...resource.Option) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	l := &Ledger{api: api, logger: logger.With("resource", SummaryPath)}

	opts = append(slices.Clone(opts), resource.WithLogger(logger), resource.WithAfterDelete(l.RefreshSummary))

	l.Transactions = NewTransactions(api, opts...)
	l.Invoices = NewInvoices(api, opts...)

	return l
}

// Refresh loads both collections and the summary.
func (l *Ledger) Refresh(ctx context.Context) {
	l.Transactions.Refresh(ctx)
	l.Invoices.Refresh(ctx)
	l.RefreshSummary(ctx)
}

func (l *Ledger) RefreshSummary(ctx context.Context) {
	res := FetchSummary(ctx, l.api)

	l.mu.Lock()
	defer l.mu.Unlock()

	if !res.Success {
		l.summaryErr = res.Error
		l.logger.Warn("failed to refresh summary", "error", res.Error)

		return
	}

	l.summary = *res.Data
	l.summaryErr = ""
}

// Summary returns the last fetched summary and the error of the last attempt, if any.
func (l *Ledger) Summary() (Summary, string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.summary, l.summaryErr
}

// Totals computes income and expenses over the transactions held locally.
func (l *Ledger) Totals() Totals {
	return Summarize(l.Transactions.Loaded())
}

func (l *Ledger) Close() {
	l.Transactions.Close()
	l.Invoices.Close()
}
