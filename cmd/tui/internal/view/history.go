package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/budget"
	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/money"
)

const historyListLimit = 20

type historyState int

const (
	historyStateBrowse historyState = iota
	historyStateDetail
	historyStateConfirmDelete
	historyStateBudgetForm
	historyStateBudgetResult
)

type HistoryModel struct {
	CommonModel
	historyService *history.Service
	budgetService  *budget.Service

	state     historyState
	table     table.Model
	histories []*history.AnalysisHistory
	form      *huh.Form

	loading bool
	err     error
	status  string

	// Form bindings
	formConfirm bool
	formBudget  string

	budgetAlert *budget.Alert
	budgetRec   budget.Recommendation
}

func NewHistoryModel(historySvc *history.Service, budgetSvc *budget.Service) HistoryModel {
	columns := []table.Column{
		{Title: "분석일", Width: 12},
		{Title: "파일", Width: 28},
		{Title: "거래", Width: 6},
		{Title: "구독", Width: 6},
		{Title: "월 총액", Width: 14},
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

	return HistoryModel{
		historyService: historySvc,
		budgetService:  budgetSvc,
		table:          t,
		loading:        true,
	}
}

func (m HistoryModel) Title() string { return "분석 기록" }

func (m HistoryModel) ShortHelp() string {
	switch m.state {
	case historyStateBrowse:
		return "Esc: back | Enter: detail | d: delete | b: budget | r: refresh"
	case historyStateDetail, historyStateBudgetResult:
		return "Esc: back"
	}

	return "Navigate form | Esc: cancel"
}

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadHistoriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.histories = msg.histories
		m.err = nil
		m.refreshTable()

		return m, nil

	case deleteHistoryMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("삭제 실패: %v", msg.err)
		} else {
			m.status = "분석 기록을 삭제했습니다."
		}

		m.state = historyStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case historyStateBrowse:
		return m.updateBrowse(msg)
	case historyStateDetail, historyStateBudgetResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = historyStateBrowse
			m.table.Focus()

			return m, nil
		}

		return m, nil
	case historyStateConfirmDelete, historyStateBudgetForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m HistoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "enter":
			if m.selected() != nil {
				m.state = historyStateDetail
				m.table.Blur()
			}

			return m, nil
		case "d":
			return m.enterDeleteConfirm()
		case "b":
			return m.enterBudgetForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m HistoryModel) enterDeleteConfirm() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formConfirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("이 분석 기록을 삭제할까요?").
				Description("포함된 구독 스냅샷도 함께 삭제됩니다.").
				Affirmative("삭제").
				Negative("취소").
				Value(&m.formConfirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = historyStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m HistoryModel) enterBudgetForm() (tea.Model, tea.Cmd) {
	if m.selected() == nil {
		return m, nil
	}

	m.formBudget = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("budget").
				Title("월 예산 (원)").
				Placeholder("50000").
				Value(&m.formBudget).
				Validate(func(s string) error {
					n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
					if err != nil || n < 0 {
						return fmt.Errorf("0 이상의 금액을 입력하세요")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = historyStateBudgetForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m HistoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = historyStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == historyStateConfirmDelete {
		if !m.formConfirm {
			m.state = historyStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd()
	}

	return m.applyBudget()
}

func (m HistoryModel) applyBudget() (tea.Model, tea.Cmd) {
	selected := m.selected()
	if selected == nil {
		m.state = historyStateBrowse
		m.form = nil

		return m, nil
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(m.formBudget), 10, 64)
	if err != nil {
		m.state = historyStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	monthlyBudget := decimal.NewFromInt(amount)
	m.budgetAlert = m.budgetService.CreateAlert(monthlyBudget, selected.Subscriptions)
	m.budgetRec = m.budgetService.Recommend(m.budgetAlert, selected.Subscriptions)
	m.state = historyStateBudgetResult
	m.form = nil

	return m, nil
}

func (m HistoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("분석 기록을 불러오는 중...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	switch m.state {
	case historyStateDetail:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDetail())
	case historyStateConfirmDelete, historyStateBudgetForm:
		if m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(48).
				Render(m.form.View())
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	case historyStateBudgetResult:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewBudget())
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m HistoryModel) viewDetail() string {
	selected := m.selected()
	if selected == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", selected.FileName, FormatDate(selected.AnalysisDate))
	fmt.Fprintf(&b, "월 총액 %s | 연간 예상 %s\n\n",
		money.FormatWon(selected.MonthlyTotal),
		money.FormatWon(selected.AnnualProjection))

	for i := range selected.Subscriptions {
		sub := &selected.Subscriptions[i]
		fmt.Fprintf(&b, "- %s %s %s [%s]\n",
			sub.ServiceName,
			money.FormatWon(sub.MonthlyAmount),
			sub.BillingCycle.Korean(),
			sub.Status.Korean())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(52).
		Render(b.String())
}

func (m HistoryModel) viewBudget() string {
	alert := m.budgetAlert
	if alert == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", alert.AlertType.Emoji(), alert.AlertType.Korean())
	fmt.Fprintf(&b, "예산     %s\n", money.FormatWon(alert.MonthlyBudget))
	fmt.Fprintf(&b, "지출     %s\n", money.FormatWon(alert.CurrentSpending))
	fmt.Fprintf(&b, "잔여     %s\n", money.FormatWon(alert.RemainingBudget()))
	fmt.Fprintf(&b, "사용률   %.1f%%\n\n", alert.UsagePercentage())
	fmt.Fprintf(&b, "%s\n", m.budgetRec.Message)

	if m.budgetRec.TargetService != "" {
		fmt.Fprintf(&b, "추천 해지: %s (%s)\n",
			m.budgetRec.TargetService, money.FormatWon(m.budgetRec.PotentialSaving))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(b.String())
}

func (m HistoryModel) selected() *history.AnalysisHistory {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.histories) {
		return nil
	}

	return m.histories[idx]
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.histories))

	for _, h := range m.histories {
		rows = append(rows, table.Row{
			FormatDate(h.AnalysisDate),
			h.FileName,
			strconv.Itoa(h.TransactionCount),
			strconv.Itoa(h.SubscriptionCount),
			money.FormatWon(h.MonthlyTotal),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadHistoriesMsg struct {
	histories []*history.AnalysisHistory
	err       error
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		histories, err := m.historyService.RecentHistory(ctx, historyListLimit)

		return loadHistoriesMsg{histories: histories, err: err}
	}
}

type deleteHistoryMsg struct {
	err error
}

func (m HistoryModel) deleteCmd() tea.Cmd {
	selected := m.selected()
	if selected == nil {
		return nil
	}

	id := selected.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteHistoryMsg{err: m.historyService.DeleteHistory(ctx, id)}
	}
}
