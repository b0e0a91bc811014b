package view

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

type stubTable struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubTable) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, call)
}

func (s *stubTable) Name() string                { return "tickets" }
func (s *stubTable) Department() session.Role    { return session.RoleIT }
func (s *stubTable) Strategy() resource.Strategy { return resource.ServerPaged }
func (s *stubTable) Statuses() []string          { return []string{"all", "open", "closed"} }
func (s *stubTable) Columns() []dashboard.Column {
	return []dashboard.Column{{Title: "Title", Width: 20}, {Title: "Status", Width: 10}}
}

func (s *stubTable) Fields() []dashboard.Field {
	return []dashboard.Field{{Key: "title", Title: "Title"}}
}

func (s *stubTable) View() dashboard.View                  { return dashboard.View{} }
func (s *stubTable) Subscribe(func(dashboard.View)) func() { return func() {} }
func (s *stubTable) Refresh(context.Context)               { s.record("refresh") }

func (s *stubTable) GoToPage(_ context.Context, n int) bool {
	s.record("page " + string(rune('0'+n)))
	return true
}

func (s *stubTable) ChangePageSize(context.Context, int) { s.record("size") }

func (s *stubTable) ChangeStatusFilter(_ context.Context, status string) {
	s.record("status " + status)
}

func (s *stubTable) Search(_ context.Context, term string, debounced bool) {
	if debounced {
		s.record("search~ " + term)
		return
	}

	s.record("search " + term)
}

func (s *stubTable) Create(context.Context, map[string]any) dashboard.Outcome {
	return dashboard.Outcome{Success: true}
}

func (s *stubTable) Update(context.Context, string, map[string]any) dashboard.Outcome {
	return dashboard.Outcome{Success: true}
}

func (s *stubTable) Delete(_ context.Context, id string) dashboard.Outcome {
	s.record("delete " + id)
	return dashboard.Outcome{Success: true, Message: "Deleted successfully"}
}

func (s *stubTable) Get(_ context.Context, id string) dashboard.Detail {
	return dashboard.Detail{Success: true, Fallback: true, Error: "offline", Record: map[string]string{"id": id}}
}

func (s *stubTable) Close() {}

func press(t *testing.T, m TableModel, keys ...string) (TableModel, []tea.Cmd) {
	t.Helper()

	var cmds []tea.Cmd

	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		next, cmd := m.Update(msg)
		m = next.(TableModel)
		cmds = append(cmds, cmd)
	}

	return m, cmds
}

func loaded(m TableModel) TableModel {
	next, _ := m.Update(ViewMsg{Name: "tickets", View: dashboard.View{
		IDs:      []string{"1", "2"},
		Rows:     [][]string{{"VPN down", "open"}, {"Printer", "closed"}},
		Page:     1,
		Pages:    2,
		Total:    12,
		PageSize: 10,
	}})

	return next.(TableModel)
}

func TestTableModel_ViewMsg(t *testing.T) {
	m := loaded(NewTableModel(&stubTable{}))

	assert.Len(t, m.grid.Rows(), 2)
	assert.Equal(t, "1", m.grid.Rows()[0][0])
	assert.Contains(t, m.View(), "VPN down")
	assert.Contains(t, m.View(), "12 record(s)")

	next, _ := m.Update(ViewMsg{Name: "employees", View: dashboard.View{}})
	assert.Len(t, next.(TableModel).grid.Rows(), 2)
}

func TestTableModel_Keys(t *testing.T) {
	stub := &stubTable{}
	m := loaded(NewTableModel(stub))

	m, cmds := press(t, m, "s", "right", "r")
	for _, cmd := range cmds {
		require.NotNil(t, cmd)
		cmd()
	}

	assert.Equal(t, []string{"status open", "page 2", "refresh"}, stub.calls)
	assert.False(t, m.Busy())
}

func TestTableModel_Search(t *testing.T) {
	stub := &stubTable{}
	m := loaded(NewTableModel(stub))

	m, _ = press(t, m, "/")
	assert.True(t, m.Busy())

	m, _ = press(t, m, "v", "p")
	assert.Equal(t, []string{"search~ v", "search~ vp"}, stub.calls)

	m, _ = press(t, m, "esc")
	assert.False(t, m.Busy())

	assert.Equal(t, []string{"search~ v", "search~ vp", "search~ "}, stub.calls)
}

func TestTableModel_Detail(t *testing.T) {
	m := loaded(NewTableModel(&stubTable{}))

	m, cmds := press(t, m, "enter")
	require.NotNil(t, cmds[0])

	next, _ := m.Update(cmds[0]())
	m = next.(TableModel)

	assert.Equal(t, tableStateDetail, m.state)
	assert.Contains(t, m.View(), "Showing the listed copy: offline")
	assert.Contains(t, m.View(), `"id": "1"`)

	m, _ = press(t, m, "esc")
	assert.Equal(t, tableStateBrowse, m.state)
}

func TestTableModel_OutcomeMsg(t *testing.T) {
	m := loaded(NewTableModel(&stubTable{}))

	next, _ := m.Update(outcomeMsg{name: "tickets", verb: "deleted", out: dashboard.Outcome{Success: true, Message: "Deleted successfully"}})
	assert.Contains(t, next.(TableModel).View(), "Deleted successfully")

	next, _ = m.Update(outcomeMsg{name: "tickets", verb: "created", out: dashboard.Outcome{Error: "Missing required fields"}})
	assert.Contains(t, next.(TableModel).View(), "Error: Missing required fields")
}

func TestFormValue(t *testing.T) {
	assert.Equal(t, float64(750), formValue(" 750 "))
	assert.Equal(t, 0.5, formValue("0.5"))
	assert.Equal(t, float64(0), formValue("0"))
	assert.Equal(t, "007", formValue("007"))
	assert.Equal(t, "2026-05-04", formValue("2026-05-04"))
	assert.Equal(t, "VPN down", formValue("VPN down"))
}
