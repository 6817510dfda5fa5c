package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vnme1/subscription-tracker/internal/history"
)

const changesListLimit = 50

type ChangesModel struct {
	CommonModel
	historyService *history.Service

	table   table.Model
	changes []*history.SubscriptionChange

	loading bool
	err     error
}

func NewChangesModel(historySvc *history.Service) ChangesModel {
	columns := []table.Column{
		{Title: "일시", Width: 12},
		{Title: "서비스", Width: 20},
		{Title: "변경", Width: 10},
		{Title: "이전", Width: 14},
		{Title: "이후", Width: 14},
		{Title: "비고", Width: 22},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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
	t.SetStyles(s)

	return ChangesModel{
		historyService: historySvc,
		table:          t,
		loading:        true,
	}
}

func (m ChangesModel) Title() string { return "변경 이력" }

func (m ChangesModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m ChangesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ChangesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadChangesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.changes = msg.changes
		m.err = nil
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ChangesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("변경 이력을 불러오는 중...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *ChangesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.changes))

	for _, c := range m.changes {
		rows = append(rows, table.Row{
			FormatDate(c.ChangeDate),
			c.ServiceName,
			c.ChangeType.Korean(),
			c.OldValue,
			c.NewValue,
			c.Notes,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadChangesMsg struct {
	changes []*history.SubscriptionChange
	err     error
}

func (m ChangesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		changes, err := m.historyService.RecentChanges(ctx, changesListLimit)

		return loadChangesMsg{changes: changes, err: err}
	}
}
