package fakeapi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Resources lists the dashboard resources with the envelope quirks of the real
// backend: employees under-report their total and transactions ignore paging.
func Resources() []Config {
	return []Config{
		{
			Name:             "employees",
			Shape:            ShapePaged,
			Required:         []string{"firstName", "lastName", "email", "department", "position"},
			UnderReportTotal: true,
		},
		{Name: "leaves", Shape: ShapeData, Required: []string{"employeeId", "type", "startDate", "endDate"}},
		{Name: "tickets", Shape: ShapePaged, Required: []string{"title", "category", "priority"}},
		{Name: "projects", Shape: ShapePaged, Required: []string{"name", "status"}},
		{Name: "campaigns", Shape: ShapeBare, IDKey: "_id", Required: []string{"name", "channel", "budget"}},
		{
			Name:         "transactions",
			Shape:        ShapeBare,
			Required:     []string{"description", "amount", "type", "method", "date"},
			Validate:     positiveAmount,
			IgnorePaging: true,
		},
		{
			Name:     "invoices",
			Shape:    ShapeData,
			IDKey:    "_id",
			Required: []string{"client_name", "amount", "status"},
			Validate: positiveAmount,
		},
	}
}

func positiveAmount(rec Record) map[string]string {
	v, ok := rec["amount"]
	if !ok || v == nil {
		return nil
	}

	if !decimalOf(v).GreaterThan(decimal.Zero) {
		return map[string]string{"amount": "must be > 0"}
	}

	return nil
}

// NewSeeded returns a store holding every resource and, when seed is set, a
// small demo dataset.
func NewSeeded(seed bool) *Store {
	s := New(Resources()...)
	if !seed {
		return s
	}

	for name, records := range demoData() {
		if err := s.Seed(name, records...); err != nil {
			panic(err)
		}
	}

	return s
}

var (
	departments = []string{"hr", "it", "accounting", "operations"}
	methods     = []string{"cash", "card", "bank_transfer", "check"}
)

func demoData() map[string][]Record {
	base := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	day := func(n int) string { return base.AddDate(0, 0, n).Format(time.DateOnly) }

	data := make(map[string][]Record)

	for i := range 23 {
		data["employees"] = append(data["employees"], Record{
			"id":         fmt.Sprint(i + 1),
			"firstName":  fmt.Sprintf("Employee%02d", i+1),
			"lastName":   []string{"Silva", "Costa", "Santos", "Pereira", "Ferreira"}[i%5],
			"email":      fmt.Sprintf("employee%02d@example.com", i+1),
			"department": departments[i%len(departments)],
			"position":   []string{"Analyst", "Engineer", "Coordinator"}[i%3],
			"status":     []string{"active", "active", "active", "on_leave", "terminated"}[i%5],
			"salary":     1800 + i*75,
			"hireDate":   day(-30 * i),
		})
	}

	for i := range 6 {
		data["leaves"] = append(data["leaves"], Record{
			"id":         fmt.Sprint(i + 1),
			"employeeId": i + 1,
			"type":       []string{"annual", "sick", "personal"}[i%3],
			"status":     []string{"pending", "approved", "rejected"}[i%3],
			"startDate":  day(7 * i),
			"endDate":    day(7*i + 2),
			"reason":     "",
		})
	}

	for i := range 14 {
		data["tickets"] = append(data["tickets"], Record{
			"id":          fmt.Sprint(i + 1),
			"title":       fmt.Sprintf("Ticket %d", i+1),
			"description": []string{"Laptop will not boot", "VPN drops", "Printer jammed", "Password reset"}[i%4],
			"category":    []string{"hardware", "network", "hardware", "access"}[i%4],
			"priority":    []string{"low", "medium", "high", "critical"}[i%4],
			"status":      []string{"open", "in_progress", "resolved", "closed"}[i%4],
			"employeeId":  i%5 + 1,
			"createdAt":   day(i),
		})
	}

	for i := range 8 {
		data["projects"] = append(data["projects"], Record{
			"id":        fmt.Sprint(i + 1),
			"name":      fmt.Sprintf("Project %c", 'A'+i),
			"status":    []string{"planning", "active", "on_hold", "completed"}[i%4],
			"priority":  []string{"low", "medium", "high"}[i%3],
			"manager":   fmt.Sprintf("Employee%02d", i+1),
			"budget":    10000 + i*2500,
			"progress":  i * 12,
			"startDate": day(-20 * i),
			"endDate":   day(60 + 10*i),
		})
	}

	for i, name := range []string{"Spring Launch", "Summer Sale", "Back to School", "Winter Promo"} {
		data["campaigns"] = append(data["campaigns"], Record{
			"_id":       fmt.Sprintf("c%d", i+1),
			"name":      name,
			"channel":   []string{"social", "email", "search", "display"}[i],
			"status":    []string{"active", "draft", "completed", "paused"}[i],
			"budget":    5000 + i*1000,
			"spent":     1200 * i,
			"startDate": day(30 * i),
			"endDate":   day(30*i + 28),
		})
	}

	for i := range 25 {
		method := methods[1+i%3]
		if i == 2 || i == 10 || i == 18 {
			method = "cash"
		}

		kind := "expense"
		if i%3 == 0 {
			kind = "income"
		}

		data["transactions"] = append(data["transactions"], Record{
			"id":          fmt.Sprint(i + 1),
			"description": fmt.Sprintf("Transaction %d", i+1),
			"amount":      100 + i*10,
			"type":        kind,
			"method":      method,
			"date":        day(i),
		})
	}

	for i := range 5 {
		data["invoices"] = append(data["invoices"], Record{
			"_id":          fmt.Sprintf("inv-%03d", i+1),
			"client_name":  []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli"}[i],
			"description":  "Consulting services",
			"invoice_type": []string{"sale", "service"}[i%2],
			"amount":       1500 + i*250,
			"status":       []string{"draft", "sent", "paid", "overdue", "sent"}[i],
			"due_date":     day(30 + i*7),
		})
	}

	return data
}
