package changes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

const defaultListLimit = 20

type Handler struct {
	histories *history.Service
}

func NewHandler(histories *history.Service) *Handler {
	return &Handler{histories: histories}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.recent)
}

// SubscriptionRoutes serves the per-subscription surfaces mounted under
// /subscriptions.
func (h *Handler) SubscriptionRoutes(r chi.Router) {
	r.Get("/", h.byService)
	r.Get("/{id}/changes", h.bySubscription)
}

type changeResponse struct {
	ID             int64     `json:"id"`
	SubscriptionID uuid.UUID `json:"subscription_id"`
	ServiceName    string    `json:"service_name"`
	ChangeType     string    `json:"change_type"`
	ChangeLabel    string    `json:"change_label"`
	OldValue       string    `json:"old_value,omitempty"`
	NewValue       string    `json:"new_value,omitempty"`
	ChangeDate     time.Time `json:"change_date"`
	Notes          string    `json:"notes,omitempty"`
}

type serviceHistoryResponse struct {
	ID             uuid.UUID       `json:"id"`
	ServiceName    string          `json:"service_name"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	BillingCycle   string          `json:"billing_cycle"`
	Status         string          `json:"status"`
	LastChargeDate time.Time       `json:"last_charge_date"`
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit

	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	changes, err := h.histories.RecentChanges(r.Context(), limit)
	if err != nil {
		if errors.Is(err, history.ErrInvalidLimit) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toChangeResponseList(changes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) bySubscription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	changes, err := h.histories.ChangesBySubscription(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toChangeResponseList(changes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) byService(w http.ResponseWriter, r *http.Request) {
	serviceName := r.URL.Query().Get("service")
	if serviceName == "" {
		http.Error(w, "service query parameter is required", http.StatusBadRequest)
		return
	}

	subs, err := h.histories.SubscriptionsByService(r.Context(), serviceName)
	if err != nil {
		if errors.Is(err, history.ErrMissingID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	responses := make([]serviceHistoryResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, toServiceHistoryResponse(&subs[i]))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(responses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toChangeResponseList(changes []*history.SubscriptionChange) []changeResponse {
	responses := make([]changeResponse, 0, len(changes))
	for _, c := range changes {
		responses = append(responses, changeResponse{
			ID:             c.ID,
			SubscriptionID: c.SubscriptionID,
			ServiceName:    c.ServiceName,
			ChangeType:     string(c.ChangeType),
			ChangeLabel:    c.ChangeType.Korean(),
			OldValue:       c.OldValue,
			NewValue:       c.NewValue,
			ChangeDate:     c.ChangeDate,
			Notes:          c.Notes,
		})
	}

	return responses
}

func toServiceHistoryResponse(sub *subscription.Subscription) serviceHistoryResponse {
	return serviceHistoryResponse{
		ID:             sub.ID,
		ServiceName:    sub.ServiceName,
		MonthlyAmount:  sub.MonthlyAmount,
		BillingCycle:   string(sub.BillingCycle),
		Status:         string(sub.Status),
		LastChargeDate: sub.LastChargeDate,
	}
}
