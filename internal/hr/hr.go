package hr

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/deskboard/internal/money"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

const (
	EmployeesPath = "employees"
	LeavesPath    = "leaves"
)

const (
	EmployeeActive     = "active"
	EmployeeOnLeave    = "on_leave"
	EmployeeTerminated = "terminated"
)

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

var (
	EmployeeStatuses = []string{resource.StatusAll, EmployeeActive, EmployeeOnLeave, EmployeeTerminated}
	LeaveStatuses    = []string{resource.StatusAll, LeavePending, LeaveApproved, LeaveRejected}
	LeaveTypes       = []string{"annual", "sick", "personal", "maternity", "paternity", "unpaid"}
)

// Employee is a staff member. Tickets and leaves embed the same shape.
type Employee struct {
	resource.Key
	FirstName  string        `json:"firstName"`
	LastName   string        `json:"lastName"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone,omitempty"`
	Department string        `json:"department"`
	Position   string        `json:"position"`
	Status     string        `json:"status"`
	Salary     money.Amount  `json:"salary"`
	HireDate   resource.Date `json:"hireDate"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func EmployeeFields(e Employee) []string {
	return []string{e.FullName(), e.Email, e.Department, e.Position, e.Status}
}

// Leave is a leave request of an employee.
type Leave struct {
	resource.Key
	EmployeeID resource.ID   `json:"employeeId"`
	Employee   *Employee     `json:"employee,omitempty"`
	Type       string        `json:"type"`
	Status     string        `json:"status"`
	StartDate  resource.Date `json:"startDate"`
	EndDate    resource.Date `json:"endDate"`
	Reason     string        `json:"reason,omitempty"`
}

// Days is the inclusive length of the leave in calendar days.
func (l Leave) Days() int {
	if l.StartDate.IsZero() || l.EndDate.IsZero() || l.EndDate.Before(l.StartDate.Time) {
		return 0
	}

	return int(l.EndDate.Sub(l.StartDate.Time).Hours()/24) + 1
}

func LeaveFields(l Leave) []string {
	fields := []string{l.Type, l.Status, l.Reason, l.StartDate.Localized(), l.EndDate.Localized()}
	if l.Employee != nil {
		fields = append(fields, l.Employee.FullName(), l.Employee.Email)
	}

	return fields
}

// NewEmployees returns the server-paginated employee directory.
func NewEmployees(api *resource.API, opts ...resource.Option) *resource.Collection[Employee] {
	base := []resource.Option{
		resource.WithName(EmployeesPath),
		resource.WithStrategy(resource.ServerPaged),
		resource.WithRequired("firstName", "lastName", "email", "department", "position"),
	}

	return resource.NewCollection[Employee](
		resource.NewClient[Employee](api, EmployeesPath),
		EmployeeFields,
		append(base, opts...)...,
	)
}

// NewLeaves returns the leave requests. The leaves endpoint does not paginate, so
// the collection is fetched once and sliced locally.
func NewLeaves(api *resource.API, opts ...resource.Option) *resource.Collection[Leave] {
	base := []resource.Option{
		resource.WithName(LeavesPath),
		resource.WithStrategy(resource.FetchAll),
		resource.WithRequired("employeeId", "type", "startDate", "endDate"),
	}

	return resource.NewCollection[Leave](
		resource.NewClient[Leave](api, LeavesPath),
		LeaveFields,
		append(base, opts...)...,
	)
}

// Approve and Reject move a leave request out of pending.
func Approve(ctx context.Context, leaves *resource.Collection[Leave], id string) resource.MutationResult[Leave] {
	return leaves.Update(ctx, id, map[string]any{"status": LeaveApproved})
}

func Reject(ctx context.Context, leaves *resource.Collection[Leave], id string) resource.MutationResult[Leave] {
	return leaves.Update(ctx, id, map[string]any{"status": LeaveRejected})
}

type LeaveStats struct {
	Pending   int
	Approved  int
	Rejected  int
	TotalDays int
}

// SummarizeLeaves counts requests by status. TotalDays only covers approved leave.
func SummarizeLeaves(leaves []Leave) LeaveStats {
	var s LeaveStats

	for _, l := range leaves {
		switch l.Status {
		case LeavePending:
			s.Pending++
		case LeaveApproved:
			s.Approved++
			s.TotalDays += l.Days()
		case LeaveRejected:
			s.Rejected++
		}
	}

	return s
}

// Headcount counts active employees per department.
func Headcount(employees []Employee) map[string]int {
	out := make(map[string]int)

	for _, e := range employees {
		if e.Status == EmployeeTerminated {
			continue
		}

		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}

		out[dept]++
	}

	return out
}
