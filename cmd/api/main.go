package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/vnme1/subscription-tracker/internal/budget"
	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/config"
	"github.com/vnme1/subscription-tracker/internal/database"
	"github.com/vnme1/subscription-tracker/internal/export"
	"github.com/vnme1/subscription-tracker/internal/history"
	historyStore "github.com/vnme1/subscription-tracker/internal/history/store"
	trackerHttp "github.com/vnme1/subscription-tracker/internal/http"
	analysisHandler "github.com/vnme1/subscription-tracker/internal/http/analysis"
	changesHandler "github.com/vnme1/subscription-tracker/internal/http/changes"
	"github.com/vnme1/subscription-tracker/internal/importer"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

func main() {
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
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		detector       = subscription.NewDetector(cfg.DetectorConfig())
		historyService = history.NewService(detector, historyStore.New(db), historyStore.NewChangeStore(db))
		importService  = importer.NewService()
		analyzer       = category.NewAnalyzer(nil)
		reporter       = export.NewReporter(analyzer)
		budgetService  = budget.NewService()
	)

	var (
		analysesH = analysisHandler.NewHandler(
			historyService, importService, reporter, analyzer, budgetService,
			cfg.Server.UploadMaxSize,
		)
		changesH = changesHandler.NewHandler(historyService)
	)

	router := trackerHttp.New(analysesH, changesH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
