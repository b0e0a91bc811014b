package it

import (
	"net/http"

	"github.com/MrJamesThe3rd/deskboard/internal/hr"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

const TicketsPath = "tickets"

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var (
	TicketStatuses = []string{resource.StatusAll, StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
	Priorities     = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	Categories     = []string{"hardware", "software", "network", "access", "other"}
)

// Ticket is a support request. The backend resolves the requesting employee.
type Ticket struct {
	resource.Key
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	EmployeeID  resource.ID   `json:"employeeId,omitempty"`
	Employee    *hr.Employee  `json:"employee,omitempty"`
	AssignedTo  string        `json:"assignedTo,omitempty"`
	CreatedAt   resource.Date `json:"createdAt"`
}

// Requester is the display name of the employee who opened the ticket.
func (t Ticket) Requester() string {
	if t.Employee == nil {
		return ""
	}

	if name := t.Employee.FullName(); name != "" {
		return name
	}

	return t.Employee.Email
}

func TicketFields(t Ticket) []string {
	fields := []string{t.Title, t.Description, t.Category, t.Priority, t.Status, t.AssignedTo}
	if t.Employee != nil {
		fields = append(fields, t.Employee.FirstName, t.Employee.LastName, t.Employee.Email)
	}

	return fields
}

func NewTickets(api *resource.API, opts ...resource.Option) *resource.Collection[Ticket] {
	base := []resource.Option{
		resource.WithName(TicketsPath),
		resource.WithStrategy(resource.ServerPaged),
		resource.WithRequired("title", "category", "priority"),
	}

	return resource.NewCollection[Ticket](
		resource.NewClient[Ticket](api, TicketsPath, resource.WithUpdateMethod(http.MethodPatch)),
		TicketFields,
		append(base, opts...)...,
	)
}

type TicketStats struct {
	Open       int
	InProgress int
	Resolved   int
	Closed     int
	// Urgent counts unresolved tickets of high or critical priority.
	Urgent int
}

func (s TicketStats) Total() int {
	return s.Open + s.InProgress + s.Resolved + s.Closed
}

func SummarizeTickets(tickets []Ticket) TicketStats {
	var s TicketStats

	for _, t := range tickets {
		unresolved := false

		switch t.Status {
		case StatusOpen:
			s.Open++
			unresolved = true
		case StatusInProgress:
			s.InProgress++
			unresolved = true
		case StatusResolved:
			s.Resolved++
		case StatusClosed:
			s.Closed++
		}

		if unresolved && (t.Priority == PriorityHigh || t.Priority == PriorityCritical) {
			s.Urgent++
		}
	}

	return s
}
