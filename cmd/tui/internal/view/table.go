package view

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
)

type tableState int

const (
	tableStateBrowse tableState = iota
	tableStateSearch
	tableStateCreate
	tableStateDelete
	tableStateDetail
)

const pageSizeStep = 5

// ViewMsg carries a new snapshot of the named table. It is sent from collection
// subscriptions.
type ViewMsg struct {
	Name string
	View dashboard.View
}

type outcomeMsg struct {
	name string
	verb string
	out  dashboard.Outcome
}

type detailMsg struct {
	name   string
	detail dashboard.Detail
}

type TableModel struct {
	CommonModel
	t dashboard.Table

	state     tableState
	grid      table.Model
	search    textinput.Model
	form      *huh.Form
	formVals  map[string]*string
	statusIdx int

	snapshot dashboard.View
	message  string
	detail   string
}

func NewTableModel(t dashboard.Table) TableModel {
	columns := []table.Column{{Title: "ID", Width: 8}}
	for _, c := range t.Columns() {
		columns = append(columns, table.Column{Title: c.Title, Width: c.Width})
	}

	grid := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	grid.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 80

	return TableModel{
		t:      t,
		grid:   grid,
		search: search,
	}
}

func (m TableModel) Name() string { return m.t.Name() }

func (m TableModel) Title() string {
	return strings.ToUpper(m.t.Name()[:1]) + m.t.Name()[1:]
}

func (m TableModel) ShortHelp() string {
	switch m.state {
	case tableStateSearch:
		return "type to search | enter: keep | esc: clear"
	case tableStateCreate:
		return "navigate form | esc: cancel"
	case tableStateDelete:
		return "confirm deletion | esc: cancel"
	case tableStateDetail:
		return "esc: back"
	}

	return "←/→: page | +/-: page size | /: search | s: status | c: create | x: delete | enter: details | r: refresh"
}

func (m TableModel) Init() tea.Cmd {
	return m.run(func(ctx context.Context) { m.t.Refresh(ctx) })
}

// Busy reports whether the table captures keys that would otherwise switch tabs.
func (m TableModel) Busy() bool {
	return m.state != tableStateBrowse
}

func (m TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ViewMsg:
		if msg.Name == m.t.Name() {
			m.apply(msg.View)
		}

		return m, nil

	case outcomeMsg:
		if msg.name != m.t.Name() {
			return m, nil
		}

		m.message = describe(msg.verb, msg.out)
		m.state = tableStateBrowse
		m.form = nil
		m.grid.Focus()

		return m, nil

	case detailMsg:
		if msg.name != m.t.Name() {
			return m, nil
		}

		if !msg.detail.Success {
			m.message = "Error: " + msg.detail.Error
			return m, nil
		}

		m.detail = prettyJSON(msg.detail.Record)
		if msg.detail.Fallback {
			m.detail = "Showing the listed copy: " + msg.detail.Error + "\n\n" + m.detail
		}

		m.state = tableStateDetail
		m.grid.Blur()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.grid.SetHeight(max(msg.Height-14, 5))

		return m, nil
	}

	switch m.state {
	case tableStateSearch:
		return m.updateSearch(msg)
	case tableStateCreate, tableStateDelete:
		return m.updateForm(msg)
	case tableStateDetail:
		if key, ok := msg.(tea.KeyMsg); ok && (key.Type == tea.KeyEsc || key.String() == "q") {
			m.state = tableStateBrowse
			m.detail = ""
			m.grid.Focus()
		}

		return m, nil
	}

	return m.updateBrowse(msg)
}

func (m TableModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)

		return m, cmd
	}

	v := m.snapshot

	switch key.String() {
	case "r":
		m.message = ""
		return m, m.run(func(ctx context.Context) { m.t.Refresh(ctx) })
	case "right", "l", "n":
		if v.Page < v.Pages {
			return m, m.run(func(ctx context.Context) { m.t.GoToPage(ctx, v.Page+1) })
		}

		return m, nil
	case "left", "h", "p":
		if v.Page > 1 {
			return m, m.run(func(ctx context.Context) { m.t.GoToPage(ctx, v.Page-1) })
		}

		return m, nil
	case "+":
		return m, m.run(func(ctx context.Context) { m.t.ChangePageSize(ctx, v.PageSize+pageSizeStep) })
	case "-":
		if v.PageSize > pageSizeStep {
			return m, m.run(func(ctx context.Context) { m.t.ChangePageSize(ctx, v.PageSize-pageSizeStep) })
		}

		return m, nil
	case "s":
		statuses := m.t.Statuses()
		if len(statuses) == 0 {
			return m, nil
		}

		m.statusIdx = (m.statusIdx + 1) % len(statuses)
		status := statuses[m.statusIdx]

		return m, m.run(func(ctx context.Context) { m.t.ChangeStatusFilter(ctx, status) })
	case "/":
		m.state = tableStateSearch
		m.grid.Blur()
		m.search.SetValue(v.Search)
		cmd := m.search.Focus()

		return m, cmd
	case "c":
		return m.enterCreate()
	case "x":
		return m.enterDelete()
	case "enter":
		id, ok := m.selected()
		if !ok {
			return m, nil
		}

		name := m.t.Name()

		return m, func() tea.Msg {
			ctx, cancel := APICtx()
			defer cancel()

			return detailMsg{name: name, detail: m.t.Get(ctx, id)}
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)

	return m, cmd
}

func (m TableModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.state = tableStateBrowse
			m.search.Blur()
			m.grid.Focus()

			return m, nil
		case tea.KeyEsc:
			m.state = tableStateBrowse
			m.search.Blur()
			m.search.SetValue("")
			m.grid.Focus()
			m.t.Search(context.Background(), "", true)

			return m, nil
		}
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	// Debounced searches return at once, so they run here in keystroke order.
	if term := m.search.Value(); term != before {
		m.t.Search(context.Background(), term, true)
	}

	return m, cmd
}

func (m TableModel) enterCreate() (tea.Model, tea.Cmd) {
	fields := m.t.Fields()
	if len(fields) == 0 {
		return m, nil
	}

	m.formVals = make(map[string]*string, len(fields))
	inputs := make([]huh.Field, 0, len(fields))

	for _, f := range fields {
		val := new(string)
		m.formVals[f.Key] = val

		if len(f.Options) > 0 {
			*val = f.Options[0]
			inputs = append(inputs, huh.NewSelect[string]().
				Key(f.Key).
				Title(f.Title).
				Options(huh.NewOptions(f.Options...)...).
				Value(val))

			continue
		}

		inputs = append(inputs, huh.NewInput().
			Key(f.Key).
			Title(f.Title).
			Value(val))
	}

	m.form = huh.NewForm(huh.NewGroup(inputs...)).WithWidth(45).WithShowHelp(false)
	m.state = tableStateCreate
	m.message = ""
	m.grid.Blur()

	return m, m.form.Init()
}

func (m TableModel) enterDelete() (tea.Model, tea.Cmd) {
	id, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title(fmt.Sprintf("Delete %s %s?", m.t.Name(), id)).
			Affirmative("Delete").
			Negative("Cancel"),
	)).WithWidth(45).WithShowHelp(false)

	m.state = tableStateDelete
	m.grid.Blur()

	return m, m.form.Init()
}

func (m TableModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = tableStateBrowse
		m.form = nil
		m.grid.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	name := m.t.Name()

	if m.state == tableStateDelete {
		id, ok := m.selected()
		if !ok || !m.form.GetBool("confirm") {
			m.state = tableStateBrowse
			m.form = nil
			m.grid.Focus()

			return m, nil
		}

		return m, func() tea.Msg {
			ctx, cancel := APICtx()
			defer cancel()

			return outcomeMsg{name: name, verb: "deleted", out: m.t.Delete(ctx, id)}
		}
	}

	payload := make(map[string]any, len(m.formVals))

	for k, v := range m.formVals {
		if strings.TrimSpace(*v) != "" {
			payload[k] = formValue(*v)
		}
	}

	return m, func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return outcomeMsg{name: name, verb: "created", out: m.t.Create(ctx, payload)}
	}
}

func (m *TableModel) apply(v dashboard.View) {
	m.snapshot = v

	rows := make([]table.Row, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = append(table.Row{v.IDs[i]}, r...)
	}

	m.grid.SetRows(rows)

	if m.grid.Cursor() >= len(rows) {
		m.grid.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TableModel) selected() (string, bool) {
	idx := m.grid.Cursor()
	if idx < 0 || idx >= len(m.snapshot.IDs) {
		return "", false
	}

	return m.snapshot.IDs[idx], true
}

// run performs fn off the update loop. Snapshots arrive through ViewMsg.
func (m TableModel) run(fn func(ctx context.Context)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		fn(ctx)

		return nil
	}
}

func (m TableModel) View() string {
	v := m.snapshot

	status := v.Status
	if status == "" {
		status = resource.StatusAll
	}

	total := fmt.Sprintf("%d", v.Total)
	if v.Estimated {
		total = "~" + total
	}

	header := fmt.Sprintf("Status: %s | Page %d/%d | %s record(s) | %d per page",
		activeStyle(status), v.Page, max(v.Pages, 1), total, v.PageSize)

	if v.Search != "" {
		header += " | Search: " + activeStyle(v.Search)
	}

	if v.Loading {
		header += " | " + faint("loading...")
	}

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.grid.View())

	if v.Empty != "" {
		body = lipgloss.NewStyle().Padding(1, 2).Render(v.Empty)
	}

	parts := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.state == tableStateSearch {
		parts = append(parts, m.search.View())
	}

	parts = append(parts, body)

	if v.Error != "" {
		parts = append(parts, errorStyle("Error: "+v.Error))
	}

	for _, field := range slices.Sorted(maps.Keys(v.FieldErrors)) {
		parts = append(parts, errorStyle(fmt.Sprintf("  %s: %s", field, v.FieldErrors[field])))
	}

	if m.message != "" {
		parts = append(parts, faint(m.message))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	var panel string

	switch {
	case (m.state == tableStateCreate || m.state == tableStateDelete) && m.form != nil:
		title := "New " + strings.TrimSuffix(m.t.Name(), "s")
		if m.state == tableStateDelete {
			title = "Delete record"
		}

		panel = panelStyle.Render(title + "\n\n" + m.form.View())
	case m.state == tableStateDetail:
		panel = panelStyle.Render(m.detail)
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return content
}

var panelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Width(48)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(s)
}

func faint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}

func describe(verb string, out dashboard.Outcome) string {
	if !out.Success {
		return "Error: " + out.Error
	}

	if out.Message != "" {
		return out.Message
	}

	return "Record " + verb
}
