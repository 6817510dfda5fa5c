package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/budget"
	"github.com/vnme1/subscription-tracker/internal/category"
	"github.com/vnme1/subscription-tracker/internal/export"
	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/importer"
)

const defaultListLimit = 10

type Handler struct {
	histories *history.Service
	imports   *importer.Service
	reporter  *export.Reporter
	analyzer  *category.Analyzer
	budgets   *budget.Service

	uploadMaxSize int64
}

func NewHandler(
	histories *history.Service,
	imports *importer.Service,
	reporter *export.Reporter,
	analyzer *category.Analyzer,
	budgets *budget.Service,
	uploadMaxSize int64,
) *Handler {
	return &Handler{
		histories:     histories,
		imports:       imports,
		reporter:      reporter,
		analyzer:      analyzer,
		budgets:       budgets,
		uploadMaxSize: uploadMaxSize,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/compare", h.compare)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/report", h.report)
	r.Get("/{id}/categories", h.categories)
	r.Get("/{id}/budget", h.budget)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)

	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		http.Error(w, "only .csv files are accepted", http.StatusBadRequest)
		return
	}

	hasHeader := r.FormValue("has_header") != "false"

	txs, err := h.imports.Import(importer.SourceCard, file, hasHeader)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.histories.AnalyzeAndPersist(r.Context(), txs, header.Filename)
	if err != nil {
		if errors.Is(err, history.ErrNoTransactions) || errors.Is(err, history.ErrMissingSource) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toHistoryResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit

	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	histories, err := h.histories.RecentHistory(r.Context(), limit)
	if err != nil {
		if errors.Is(err, history.ErrInvalidLimit) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toHistoryResponseList(histories)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadHistory(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toHistoryResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.histories.DeleteHistory(r.Context(), id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) compare(w http.ResponseWriter, r *http.Request) {
	olderID, err := uuid.Parse(r.URL.Query().Get("older"))
	if err != nil {
		http.Error(w, "invalid older id", http.StatusBadRequest)
		return
	}

	newerID, err := uuid.Parse(r.URL.Query().Get("newer"))
	if err != nil {
		http.Error(w, "invalid newer id", http.StatusBadRequest)
		return
	}

	result, err := h.histories.CompareHistory(r.Context(), olderID, newerID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toComparisonResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadHistory(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("analysis_%s.csv", result.AnalysisDate.Format("20060102"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reporter.WriteReport(w, result); err != nil {
		slog.Error("failed to write report", "id", result.ID, "error", err)
	}
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadHistory(w, r)
	if !ok {
		return
	}

	stats := h.analyzer.Distribution(result.Subscriptions)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCategoryStatsResponse(stats)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) budget(w http.ResponseWriter, r *http.Request) {
	result, ok := h.loadHistory(w, r)
	if !ok {
		return
	}

	monthlyBudget, err := decimal.NewFromString(r.URL.Query().Get("budget"))
	if err != nil || monthlyBudget.IsNegative() {
		http.Error(w, "budget query parameter must be a non-negative number", http.StatusBadRequest)
		return
	}

	alert := h.budgets.CreateAlert(monthlyBudget, result.Subscriptions)
	rec := h.budgets.Recommend(alert, result.Subscriptions)

	resp := budgetResponse{
		MonthlyBudget:   alert.MonthlyBudget,
		CurrentSpending: alert.CurrentSpending,
		RemainingBudget: alert.RemainingBudget(),
		UsagePercentage: alert.UsagePercentage(),
		AlertType:       string(alert.AlertType),
		AlertLabel:      alert.AlertType.Emoji() + " " + alert.AlertType.Korean(),
	}
	resp.Recommendation.Type = rec.Type
	resp.Recommendation.Message = rec.Message
	resp.Recommendation.TargetService = rec.TargetService
	resp.Recommendation.PotentialSaving = rec.PotentialSaving

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// loadHistory resolves the {id} path parameter to a stored snapshot, writing
// the error response itself when it cannot.
func (h *Handler) loadHistory(w http.ResponseWriter, r *http.Request) (*history.AnalysisHistory, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	result, err := h.histories.HistoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return result, true
}
