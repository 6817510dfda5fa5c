package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vnme1/subscription-tracker/internal/subscription"
)

var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("analysis history not found")
	// ErrNoTransactions is returned when an analysis is requested over an
	// empty transaction list.
	ErrNoTransactions = errors.New("no transactions to analyze")
	// ErrInvalidLimit is returned for recent-N queries outside [1,100].
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
	// ErrMissingSource is returned when the source file name is blank.
	ErrMissingSource = errors.New("source name is required")
	// ErrMissingID is returned for blank identifier arguments.
	ErrMissingID = errors.New("id is required")
)

// AnalysisHistory is the immutable snapshot of one detection run. Deleting a
// snapshot cascades to its owned subscription rows.
type AnalysisHistory struct {
	ID                uuid.UUID
	AnalysisDate      time.Time
	FileName          string
	TransactionCount  int
	SubscriptionCount int
	MonthlyTotal      decimal.Decimal
	AnnualProjection  decimal.Decimal
	Subscriptions     []subscription.Subscription
	CreatedAt         time.Time
}

// NewAnalysisHistory builds a snapshot from a detection summary.
func NewAnalysisHistory(summary subscription.Summary, fileName string, transactionCount int) *AnalysisHistory {
	return &AnalysisHistory{
		ID:                uuid.New(),
		AnalysisDate:      summary.AnalysisDate,
		FileName:          fileName,
		TransactionCount:  transactionCount,
		SubscriptionCount: summary.TotalSubscriptions,
		MonthlyTotal:      summary.MonthlyTotal,
		AnnualProjection:  summary.AnnualProjection,
		Subscriptions:     summary.Subscriptions,
		CreatedAt:         summary.AnalysisDate,
	}
}

//go:generate mockgen -source=history.go -destination=repository_mock.go -package=history

// Repository is the snapshot store.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AnalysisHistory, error)
	FindRecent(ctx context.Context, limit int) ([]*AnalysisHistory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindSubscriptionsByService(ctx context.Context, serviceName string) ([]subscription.Subscription, error)

	// BeginAnalysis opens the transactional boundary for one
	// save-and-track step. Concurrent analyses serialize around it.
	BeginAnalysis(ctx context.Context) (AnalysisTx, error)
}

// AnalysisTx scopes the snapshot write and its change events to a single
// commit-or-rollback unit.
type AnalysisTx interface {
	FindRecent(ctx context.Context, limit int) ([]*AnalysisHistory, error)
	SaveHistory(ctx context.Context, h *AnalysisHistory) error
	SaveChange(ctx context.Context, c *SubscriptionChange) error
	Commit() error
	Rollback() error
}

// ChangeRepository is the append-only change event store.
type ChangeRepository interface {
	FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*SubscriptionChange, error)
	FindRecent(ctx context.Context, limit int) ([]*SubscriptionChange, error)
}
