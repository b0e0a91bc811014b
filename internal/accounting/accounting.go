package accounting

import (
	"github.com/MrJamesThe3rd/deskboard/internal/money"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

const (
	TransactionsPath = "transactions"
	InvoicesPath     = "invoices"
	SummaryPath      = "accounting/summary"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Method is how a transaction was paid.
type Method string

const (
	MethodCash         Method = "cash"
	MethodCard         Method = "card"
	MethodBankTransfer Method = "bank_transfer"
	MethodCheck        Method = "check"
)

const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

var (
	Types           = []Type{TypeIncome, TypeExpense}
	Methods         = []Method{MethodCash, MethodCard, MethodBankTransfer, MethodCheck}
	InvoiceStatuses = []string{resource.StatusAll, InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled}
)

// Transaction is a ledger entry.
type Transaction struct {
	resource.Key
	Description string        `json:"description"`
	Amount      money.Amount  `json:"amount"`
	Type        Type          `json:"type"`
	Method      Method        `json:"method"`
	Category    string        `json:"category,omitempty"`
	Date        resource.Date `json:"date"`
}

// TransactionFields are matched by the search box: description, type, method,
// amount and the date both as displayed and as ISO.
func TransactionFields(t Transaction) []string {
	return []string{
		t.Description,
		string(t.Type),
		string(t.Method),
		t.Amount.String(),
		t.Date.Localized(),
		t.Date.ISO(),
	}
}

// Invoice is a bill issued to a client.
type Invoice struct {
	resource.Key
	ClientName  string        `json:"client_name"`
	Description string        `json:"description"`
	InvoiceType string        `json:"invoice_type"`
	Amount      money.Amount  `json:"amount"`
	Status      string        `json:"status"`
	DueDate     resource.Date `json:"due_date"`
}

func InvoiceFields(i Invoice) []string {
	return []string{
		i.ClientName,
		i.Description,
		i.RecordID(),
		i.InvoiceType,
		i.Amount.String(),
		i.Status,
	}
}

// NewTransactions returns the ledger. Transactions are fetched in full and sliced locally.
func NewTransactions(api *resource.API, opts ...resource.Option) *resource.Collection[Transaction] {
	base := []resource.Option{
		resource.WithName(TransactionsPath),
		resource.WithStrategy(resource.FetchAll),
		resource.WithRequired("description", "amount", "type", "method", "date"),
	}

	return resource.NewCollection[Transaction](
		resource.NewClient[Transaction](api, TransactionsPath),
		TransactionFields,
		append(base, opts...)...,
	)
}

func NewInvoices(api *resource.API, opts ...resource.Option) *resource.Collection[Invoice] {
	base := []resource.Option{
		resource.WithName(InvoicesPath),
		resource.WithStrategy(resource.FetchAll),
		resource.WithRequired("client_name", "amount", "status"),
	}

	return resource.NewCollection[Invoice](
		resource.NewClient[Invoice](api, InvoicesPath),
		InvoiceFields,
		append(base, opts...)...,
	)
}

// Totals are the client-computed figures of a set of transactions.
type Totals struct {
	Income   money.Amount
	Expenses money.Amount
	Net      money.Amount
	Count    int
}

func Summarize(txs []Transaction) Totals {
	var t Totals

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case TypeExpense:
			t.Expenses = t.Expenses.Add(money.New(tx.Amount.Abs()))
		}

		t.Count++
	}

	t.Net = t.Income.Sub(t.Expenses)

	return t
}
