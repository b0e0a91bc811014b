package it_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/hr"
	"github.com/MrJamesThe3rd/deskboard/internal/it"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

func TestTicket_Decode(t *testing.T) {
	payload := `{
		"id": 301,
		"title": "VPN drops",
		"category": "network",
		"priority": "high",
		"status": "open",
		"employee": {"_id": "e-9", "firstName": "Ana", "lastName": "Reis", "email": "ana@corp.pt"},
		"createdAt": "2024-03-02T09:15:00.000Z"
	}`

	var tk it.Ticket
	require.NoError(t, json.Unmarshal([]byte(payload), &tk))

	assert.Equal(t, "301", tk.RecordID())
	assert.Equal(t, "Ana Reis", tk.Requester())
	assert.Equal(t, "e-9", tk.Employee.RecordID())
	assert.Equal(t, "3/2/2024", tk.CreatedAt.Localized())
	assert.Contains(t, it.TicketFields(tk), "ana@corp.pt")
}

func TestTicket_Requester(t *testing.T) {
	assert.Empty(t, it.Ticket{}.Requester())
	assert.Equal(t, "x@corp.pt", it.Ticket{Employee: &hr.Employee{Email: "x@corp.pt"}}.Requester())
}

func TestSummarizeTickets(t *testing.T) {
	tickets := []it.Ticket{
		{Status: it.StatusOpen, Priority: it.PriorityCritical},
		{Status: it.StatusOpen, Priority: it.PriorityLow},
		{Status: it.StatusInProgress, Priority: it.PriorityHigh},
		{Status: it.StatusResolved, Priority: it.PriorityHigh},
		{Status: it.StatusClosed, Priority: it.PriorityMedium},
	}

	got := it.SummarizeTickets(tickets)
	assert.Equal(t, it.TicketStats{Open: 2, InProgress: 1, Resolved: 1, Closed: 1, Urgent: 2}, got)
	assert.Equal(t, 5, got.Total())
}

func TestTicketSearch(t *testing.T) {
	tickets := []it.Ticket{
		{Key: resource.Key{ID: "1"}, Title: "Printer jam", Employee: &hr.Employee{FirstName: "Rui"}},
		{Key: resource.Key{ID: "2"}, Title: "New laptop", Employee: &hr.Employee{FirstName: "Ana"}},
		{Key: resource.Key{ID: "3"}, Title: "Password reset"},
	}

	o := resource.NewOverlay(it.TicketFields)
	got := o.Filter(tickets, "ANA")

	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].RecordID())
}

func TestNewTickets_UpdatesWithPatch(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"success":true,"data":[],"total":0}`))
			return
		}

		_, _ = w.Write([]byte(`{"success":true,"data":{"id":7,"status":"closed"}}`))
	}))
	defer srv.Close()

	tickets := it.NewTickets(resource.NewAPI(srv.URL))
	defer tickets.Close()

	res := tickets.Update(context.Background(), "7", map[string]any{"status": it.StatusClosed})
	require.True(t, res.Success, res.Error)

	mu.Lock()
	defer mu.Unlock()

	require.NotEmpty(t, requests)
	assert.Equal(t, "PATCH /tickets/7", requests[0])
}
