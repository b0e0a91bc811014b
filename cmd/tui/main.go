package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/deskboard/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/deskboard/internal/accounting"
	"github.com/MrJamesThe3rd/deskboard/internal/config"
	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
	"github.com/MrJamesThe3rd/deskboard/internal/logging"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

const logFile = "deskboard-tui.log"

type model struct {
	board   *dashboard.Board
	session session.Session

	tabs   []view.TableModel
	active int
}

func initialModel(logOut io.Writer) (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return model{}, err
	}

	sess := session.Session{Role: session.RoleAdmin}
	if cfg.API.Token != "" {
		sess, err = session.FromToken(cfg.API.Token)
		if err != nil {
			return model{}, fmt.Errorf("read token: %w", err)
		}
	}

	api := resource.NewAPI(cfg.API.BaseURL,
		resource.WithToken(cfg.API.Token),
		resource.WithTimeout(cfg.API.Timeout),
		resource.WithAPILogger(logger),
	)

	board := dashboard.New(api, sess.Role, logger,
		resource.WithPageSize(cfg.Collections.PageSize),
		resource.WithSearchLimit(cfg.Collections.SearchLimit),
		resource.WithDebounce(cfg.Collections.Debounce),
	)

	if len(board.Tables()) == 0 {
		return model{}, fmt.Errorf("role %s has no department to manage", sess.Role)
	}

	m := model{board: board, session: sess}
	for _, t := range board.Tables() {
		m.tabs = append(m.tabs, view.NewTableModel(t))
	}

	return m, nil
}

// subscribe forwards every table snapshot to the program.
func (m model) subscribe(p *tea.Program) {
	for _, t := range m.board.Tables() {
		name := t.Name()
		t.Subscribe(func(v dashboard.View) {
			p.Send(view.ViewMsg{Name: name, View: v})
		})
	}
}

func (m model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	for _, tab := range m.tabs {
		cmds = append(cmds, tab.Init())
	}

	if m.board.Ledger != nil {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := view.APICtx()
			defer cancel()

			m.board.RefreshSummary(ctx)

			return nil
		})
	}

	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.tabs[m.active].Busy() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.active = (m.active + 1) % len(m.tabs)
				return m, nil
			case "shift+tab":
				m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
				return m, nil
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg, view.ViewMsg:
		// Every tab tracks the window size and its own snapshots.
		cmds := make([]tea.Cmd, len(m.tabs))

		for i := range m.tabs {
			var next tea.Model
			next, cmds[i] = m.tabs[i].Update(msg)
			m.tabs[i] = next.(view.TableModel)
		}

		return m, tea.Batch(cmds...)
	}

	next, cmd := m.tabs[m.active].Update(msg)
	m.tabs[m.active] = next.(view.TableModel)

	return m, cmd
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

func (m model) View() string {
	labels := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}

		labels[i] = style.Render(tab.Title())
	}

	who := m.session.Name
	if who == "" {
		who = m.session.Email
	}

	header := titleStyle.Render("Deskboard") + "  " + lipgloss.NewStyle().Faint(true).Render(strings.TrimSpace(who+" ("+m.session.Role.String()+")"))

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, labels...)}

	tab := m.tabs[m.active]
	if m.board.Ledger != nil && (tab.Name() == accounting.TransactionsPath || tab.Name() == accounting.InvoicesPath) {
		parts = append(parts, m.summaryLine())
	}

	parts = append(parts, "", tab.View(), "", lipgloss.NewStyle().Faint(true).Render(tab.ShortHelp()+" | tab: switch | q: quit"))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) summaryLine() string {
	s, errMsg := m.board.Ledger.Summary()
	if errMsg != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Summary unavailable: " + errMsg)
	}

	return fmt.Sprintf("Revenue %s | Expenses %s | Net %s",
		s.TotalRevenue.Format(), s.TotalExpenses.Format(), s.NetProfit.Format())
}

func main() {
	_ = godotenv.Load()

	out, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	m, err := initialModel(out)
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}
	defer m.board.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.subscribe(p)

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
