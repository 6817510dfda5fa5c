package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/vnme1/subscription-tracker/cmd/tui/internal/view"
	"github.com/vnme1/subscription-tracker/internal/budget"
	"github.com/vnme1/subscription-tracker/internal/config"
	"github.com/vnme1/subscription-tracker/internal/database"
	"github.com/vnme1/subscription-tracker/internal/history"
	historyStore "github.com/vnme1/subscription-tracker/internal/history/store"
	"github.com/vnme1/subscription-tracker/internal/importer"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

type model struct {
	historyService *history.Service
	importService  *importer.Service
	budgetService  *budget.Service

	currentView View

	analyzeView view.AnalyzeModel
	historyView view.HistoryModel
	changesView view.ChangesModel
}

type View int

const (
	ViewMenu    View = 0
	ViewAnalyze View = 1
	ViewHistory View = 2
	ViewChanges View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	detector := subscription.NewDetector(cfg.DetectorConfig())
	historySvc := history.NewService(detector, historyStore.New(db), historyStore.NewChangeStore(db))
	importSvc := importer.NewService()
	budgetSvc := budget.NewService()

	return model{
		historyService: historySvc,
		importService:  importSvc,
		budgetService:  budgetSvc,
		currentView:    ViewMenu,
		analyzeView:    view.NewAnalyzeModel(historySvc, importSvc),
		historyView:    view.NewHistoryModel(historySvc, budgetSvc),
		changesView:    view.NewChangesModel(historySvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewAnalyze
				m.analyzeView = view.NewAnalyzeModel(m.historyService, m.importService)

				return m, m.analyzeView.Init()
			case "2":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.historyService, m.budgetService)

				return m, m.historyView.Init()
			case "3":
				m.currentView = ViewChanges
				m.changesView = view.NewChangesModel(m.historyService)

				return m, m.changesView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewAnalyze:
		var newModel tea.Model
		newModel, cmd = m.analyzeView.Update(msg)
		m.analyzeView = newModel.(view.AnalyzeModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	case ViewChanges:
		var newModel tea.Model
		newModel, cmd = m.changesView.Update(msg)
		m.changesView = newModel.(view.ChangesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"구독 트래커\n\n" +
				"1. 카드 내역 분석\n" +
				"2. 분석 기록\n" +
				"3. 변경 이력\n\n" +
				"q. Quit",
		)
	case ViewAnalyze:
		return m.analyzeView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewChanges:
		return m.changesView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
