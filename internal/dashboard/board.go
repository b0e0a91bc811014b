package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/MrJamesThe3rd/deskboard/internal/accounting"
	"github.com/MrJamesThe3rd/deskboard/internal/hr"
	"github.com/MrJamesThe3rd/deskboard/internal/it"
	"github.com/MrJamesThe3rd/deskboard/internal/operations"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

// Board holds the tables the role may manage, in display order.
type Board struct {
	Role   session.Role
	Ledger *accounting.Ledger

	tables []Table
}

// New builds the board for role. Options apply to every collection.
func New(api *resource.API, role session.Role, logger *slog.Logger, opts ...resource.Option) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	b := &Board{Role: role}
	opts = append(slices.Clone(opts), resource.WithLogger(logger))

	if role.CanManage(session.RoleHR) {
		b.tables = append(b.tables,
			&table[hr.Employee]{
				name:       hr.EmployeesPath,
				department: session.RoleHR,
				columns:    []Column{{"Name", 24}, {"Email", 28}, {"Department", 12}, {"Position", 14}, {"Status", 10}},
				fields: []Field{
					{Key: "firstName", Title: "First name"},
					{Key: "lastName", Title: "Last name"},
					{Key: "email", Title: "Email"},
					{Key: "department", Title: "Department", Options: []string{"hr", "it", "accounting", "operations"}},
					{Key: "position", Title: "Position"},
				},
				statuses: hr.EmployeeStatuses,
				row: func(e hr.Employee) []string {
					return []string{e.FullName(), e.Email, e.Department, e.Position, e.Status}
				},
				coll: hr.NewEmployees(api, opts...),
			},
			&table[hr.Leave]{
				name:       hr.LeavesPath,
				department: session.RoleHR,
				columns:    []Column{{"Employee", 22}, {"Type", 10}, {"Status", 10}, {"From", 10}, {"To", 10}, {"Days", 5}},
				fields: []Field{
					{Key: "employeeId", Title: "Employee ID"},
					{Key: "type", Title: "Type", Options: hr.LeaveTypes},
					{Key: "startDate", Title: "From (YYYY-MM-DD)"},
					{Key: "endDate", Title: "To (YYYY-MM-DD)"},
					{Key: "reason", Title: "Reason"},
				},
				statuses: hr.LeaveStatuses,
				row: func(l hr.Leave) []string {
					who := l.EmployeeID.String()
					if l.Employee != nil {
						who = l.Employee.FullName()
					}

					return []string{who, l.Type, l.Status, l.StartDate.ISO(), l.EndDate.ISO(), strconv.Itoa(l.Days())}
				},
				coll: hr.NewLeaves(api, opts...),
			},
		)
	}

	if role.CanManage(session.RoleIT) {
		b.tables = append(b.tables, &table[it.Ticket]{
			name:       it.TicketsPath,
			department: session.RoleIT,
			columns:    []Column{{"Title", 26}, {"Category", 10}, {"Priority", 9}, {"Status", 12}, {"Requester", 20}},
			fields: []Field{
				{Key: "title", Title: "Title"},
				{Key: "description", Title: "Description"},
				{Key: "category", Title: "Category", Options: it.Categories},
				{Key: "priority", Title: "Priority", Options: it.Priorities},
			},
			statuses: it.TicketStatuses,
			row: func(t it.Ticket) []string {
				return []string{t.Title, t.Category, t.Priority, t.Status, t.Requester()}
			},
			coll: it.NewTickets(api, opts...),
		})
	}

	if role.CanManage(session.RoleAccounting) {
		b.Ledger = accounting.NewLedger(api, logger, opts...)

		b.tables = append(b.tables,
			&table[accounting.Transaction]{
				name:       accounting.TransactionsPath,
				department: session.RoleAccounting,
				columns:    []Column{{"Date", 10}, {"Description", 28}, {"Type", 8}, {"Method", 13}, {"Amount", 12}},
				fields: []Field{
					{Key: "description", Title: "Description"},
					{Key: "amount", Title: "Amount"},
					{Key: "type", Title: "Type", Options: []string{"income", "expense"}},
					{Key: "method", Title: "Method", Options: []string{"cash", "card", "bank_transfer", "check"}},
					{Key: "date", Title: "Date (YYYY-MM-DD)"},
				},
				row: func(t accounting.Transaction) []string {
					return []string{t.Date.ISO(), t.Description, string(t.Type), string(t.Method), t.Amount.Format()}
				},
				coll: b.Ledger.Transactions,
			},
			&table[accounting.Invoice]{
				name:       accounting.InvoicesPath,
				department: session.RoleAccounting,
				columns:    []Column{{"Invoice", 10}, {"Client", 20}, {"Type", 8}, {"Amount", 12}, {"Status", 10}, {"Due", 10}},
				fields: []Field{
					{Key: "client_name", Title: "Client"},
					{Key: "description", Title: "Description"},
					{Key: "amount", Title: "Amount"},
					{Key: "status", Title: "Status", Options: accounting.InvoiceStatuses[1:]},
					{Key: "due_date", Title: "Due (YYYY-MM-DD)"},
				},
				statuses: accounting.InvoiceStatuses,
				row: func(i accounting.Invoice) []string {
					return []string{i.RecordID(), i.ClientName, i.InvoiceType, i.Amount.Format(), i.Status, i.DueDate.ISO()}
				},
				coll: b.Ledger.Invoices,
			},
		)
	}

	if role.CanManage(session.RoleOperations) {
		b.tables = append(b.tables,
			&table[operations.Project]{
				name:       operations.ProjectsPath,
				department: session.RoleOperations,
				columns:    []Column{{"Project", 20}, {"Status", 10}, {"Priority", 8}, {"Manager", 16}, {"Budget", 12}, {"Progress", 8}},
				fields: []Field{
					{Key: "name", Title: "Name"},
					{Key: "description", Title: "Description"},
					{Key: "status", Title: "Status", Options: operations.ProjectStatuses[1:]},
					{Key: "manager", Title: "Manager"},
					{Key: "budget", Title: "Budget"},
				},
				statuses: operations.ProjectStatuses,
				row: func(p operations.Project) []string {
					return []string{p.Name, p.Status, p.Priority, p.Manager, p.Budget.Format(), fmt.Sprintf("%d%%", p.Progress)}
				},
				coll: operations.NewProjects(api, opts...),
			},
			&table[operations.Campaign]{
				name:       operations.CampaignsPath,
				department: session.RoleOperations,
				columns:    []Column{{"Campaign", 20}, {"Channel", 8}, {"Status", 10}, {"Budget", 12}, {"Spent", 12}},
				fields: []Field{
					{Key: "name", Title: "Name"},
					{Key: "channel", Title: "Channel", Options: operations.Channels},
					{Key: "budget", Title: "Budget"},
				},
				statuses: operations.CampaignStatuses,
				row: func(c operations.Campaign) []string {
					return []string{c.Name, c.Channel, c.Status, c.Budget.Format(), c.Spent.Format()}
				},
				coll: operations.NewCampaigns(api, opts...),
			},
		)
	}

	return b
}

func (b *Board) Tables() []Table {
	return b.tables
}

// Table looks a table up by resource name.
func (b *Board) Table(name string) (Table, bool) {
	for _, t := range b.tables {
		if t.Name() == name {
			return t, true
		}
	}

	return nil, false
}

// Names lists the resource names on the board.
func (b *Board) Names() []string {
	names := make([]string, len(b.tables))
	for i, t := range b.tables {
		names[i] = t.Name()
	}

	return names
}

// RefreshSummary reloads the accounting summary when the board carries the ledger.
func (b *Board) RefreshSummary(ctx context.Context) {
	if b.Ledger != nil {
		b.Ledger.RefreshSummary(ctx)
	}
}

func (b *Board) Close() {
	for _, t := range b.tables {
		t.Close()
	}
}

