package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/importer"
	"github.com/vnme1/subscription-tracker/internal/money"
)

const analyzeTimeout = 2 * time.Minute

type analyzeState int

const (
	analyzeStateFilePick analyzeState = iota
	analyzeStateRunning
	analyzeStateResult
)

type AnalyzeModel struct {
	CommonModel
	historyService *history.Service
	importService  *importer.Service

	state      analyzeState
	filePicker filepicker.Model
	table      table.Model
	result     *history.AnalysisHistory

	status string
	err    error
}

func NewAnalyzeModel(historySvc *history.Service, importSvc *importer.Service) AnalyzeModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return AnalyzeModel{
		historyService: historySvc,
		importService:  importSvc,
		filePicker:     fp,
	}
}

func (m AnalyzeModel) Title() string { return "구독 분석" }

func (m AnalyzeModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m AnalyzeModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m AnalyzeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case analyzeResultMsg:
		if msg.err != nil {
			m.state = analyzeStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("분석 실패: %v", msg.err)

			return m, nil
		}

		m.state = analyzeStateResult
		m.result = msg.result
		m.status = fmt.Sprintf("분석 완료: 거래 %d건에서 구독 %d건 감지",
			msg.result.TransactionCount, msg.result.SubscriptionCount)
		m.refreshTable()

		return m, nil
	}

	if m.state != analyzeStateFilePick {
		if m.state == analyzeStateResult {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)

			return m, cmd
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = analyzeStateRunning
		m.status = fmt.Sprintf("%s 분석 중...", filepath.Base(path))

		return m, m.analyzeCmd(path)
	}

	return m, cmd
}

func (m AnalyzeModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == analyzeStateResult {
		m.state = analyzeStateFilePick
		m.result = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m AnalyzeModel) View() string {
	switch m.state {
	case analyzeStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"분석할 카드 내역 CSV 선택:\n\n" + m.filePicker.View(),
		)
	case analyzeStateRunning:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case analyzeStateResult:
		return m.viewResult()
	}

	return ""
}

func (m AnalyzeModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.status) +
				"\n\n(Esc to go back)",
		)
	}

	header := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status)

	totals := fmt.Sprintf("월 총액: %s | 연간 예상: %s",
		money.FormatWon(m.result.MonthlyTotal),
		money.FormatWon(m.result.AnnualProjection),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().PaddingBottom(1).Render(totals),
		tableView,
		"\n(Esc to go back)",
	))
}

func (m *AnalyzeModel) refreshTable() {
	columns := []table.Column{
		{Title: "서비스", Width: 24},
		{Title: "월금액", Width: 12},
		{Title: "주기", Width: 8},
		{Title: "상태", Width: 8},
		{Title: "최근결제", Width: 12},
		{Title: "다음결제", Width: 12},
	}

	rows := make([]table.Row, 0, len(m.result.Subscriptions))

	for i := range m.result.Subscriptions {
		sub := &m.result.Subscriptions[i]

		next := ""
		if sub.NextChargeDate != nil {
			next = FormatDate(*sub.NextChargeDate)
		}

		rows = append(rows, table.Row{
			sub.ServiceName,
			money.FormatWon(sub.MonthlyAmount),
			sub.BillingCycle.Korean(),
			sub.Status.Korean(),
			FormatDate(sub.LastChargeDate),
			next,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
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
	t.SetStyles(s)

	m.table = t
}

// Messages

type analyzeResultMsg struct {
	result *history.AnalysisHistory
	err    error
}

func (m AnalyzeModel) analyzeCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return analyzeResultMsg{err: err}
		}
		defer f.Close()

		txs, err := m.importService.Import(importer.SourceCard, f, true)
		if err != nil {
			return analyzeResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		result, err := m.historyService.AnalyzeAndPersist(ctx, txs, filepath.Base(path))
		if err != nil {
			return analyzeResultMsg{err: err}
		}

		return analyzeResultMsg{result: result}
	}
}
