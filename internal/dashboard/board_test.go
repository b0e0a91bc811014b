package dashboard_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
	deskHttp "github.com/MrJamesThe3rd/deskboard/internal/http"
	"github.com/MrJamesThe3rd/deskboard/internal/http/records"
	"github.com/MrJamesThe3rd/deskboard/internal/http/summary"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

func newBoard(t *testing.T, role session.Role) (*dashboard.Board, *fakeapi.Store) {
	t.Helper()

	store := fakeapi.NewSeeded(true)

	srv := httptest.NewServer(deskHttp.New(records.NewHandler(store), summary.NewHandler(store), nil))
	t.Cleanup(srv.Close)

	b := dashboard.New(resource.NewAPI(srv.URL+"/api"), role, nil, resource.WithPageSize(5))
	t.Cleanup(b.Close)

	return b, store
}

func TestNew_TablesByRole(t *testing.T) {
	tests := []struct {
		name      string
		role      session.Role
		want      []string
		hasLedger bool
	}{
		{
			name:      "Admin",
			role:      session.RoleAdmin,
			want:      []string{"employees", "leaves", "tickets", "transactions", "invoices", "projects", "campaigns"},
			hasLedger: true,
		},
		{
			name: "HR",
			role: session.RoleHR,
			want: []string{"employees", "leaves"},
		},
		{
			name:      "Accounting",
			role:      session.RoleAccounting,
			want:      []string{"transactions", "invoices"},
			hasLedger: true,
		},
		{
			name: "Employee",
			role: session.RoleEmployee,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dashboard.New(resource.NewAPI("http://localhost:1/api"), tt.role, nil)
			defer b.Close()

			assert.Equal(t, tt.want, b.Names())
			assert.Equal(t, tt.hasLedger, b.Ledger != nil)
		})
	}
}

func TestTable_View(t *testing.T) {
	ctx := context.Background()
	b, _ := newBoard(t, session.RoleIT)

	tickets, ok := b.Table("tickets")
	require.True(t, ok)
	assert.Equal(t, resource.ServerPaged, tickets.Strategy())
	assert.Equal(t, session.RoleIT, tickets.Department())

	_, ok = b.Table("employees")
	assert.False(t, ok)

	tickets.Refresh(ctx)

	v := tickets.View()
	require.Empty(t, v.Error)
	assert.Equal(t, resource.PhaseLoaded, v.Phase)
	assert.Equal(t, 14, v.Total)
	assert.Equal(t, 3, v.Pages)
	assert.Len(t, v.Rows, 5)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, v.IDs)
	assert.Equal(t, []string{"Ticket 1", "hardware", "low", "open", ""}, v.Rows[0])
	assert.Len(t, v.Rows[0], len(tickets.Columns()))

	tickets.ChangeStatusFilter(ctx, "closed")

	v = tickets.View()
	assert.Equal(t, "closed", v.Status)
	assert.Equal(t, 3, v.Total)

	tickets.Search(ctx, "no such ticket", false)

	v = tickets.View()
	assert.Empty(t, v.Rows)
	assert.Equal(t, "No records match your search", v.Empty)
}

func TestTable_Mutations(t *testing.T) {
	ctx := context.Background()
	b, store := newBoard(t, session.RoleOperations)

	projects, ok := b.Table("projects")
	require.True(t, ok)

	var views []dashboard.View

	unsubscribe := projects.Subscribe(func(v dashboard.View) { views = append(views, v) })
	defer unsubscribe()

	missing := projects.Create(ctx, map[string]any{"name": "Relocation"})
	assert.False(t, missing.Success)
	assert.Equal(t, map[string]string{"status": "is required"}, missing.FieldErrors)

	created := projects.Create(ctx, map[string]any{"name": "Relocation", "status": "planning", "budget": 5000})
	require.True(t, created.Success, created.Error)
	assert.Len(t, store.Records("projects"), 9)

	updated := projects.Update(ctx, "2", map[string]any{"status": "completed"})
	require.True(t, updated.Success, updated.Error)

	detail := projects.Get(ctx, "2")
	require.True(t, detail.Success)
	assert.False(t, detail.Fallback)
	require.NotNil(t, detail.Record)

	deleted := projects.Delete(ctx, "2")
	require.True(t, deleted.Success, deleted.Error)
	assert.Len(t, store.Records("projects"), 8)

	require.NotEmpty(t, views)
	assert.Equal(t, 8, projects.View().Total)
}

func TestTable_EmptyCollection(t *testing.T) {
	ctx := context.Background()

	store := fakeapi.NewSeeded(false)
	srv := httptest.NewServer(deskHttp.New(records.NewHandler(store), summary.NewHandler(store), nil))
	t.Cleanup(srv.Close)

	b := dashboard.New(resource.NewAPI(srv.URL+"/api"), session.RoleOperations, nil)
	t.Cleanup(b.Close)

	campaigns, ok := b.Table("campaigns")
	require.True(t, ok)

	campaigns.Refresh(ctx)

	v := campaigns.View()
	assert.Equal(t, "No records found", v.Empty)
	assert.Zero(t, v.Total)
}
