package history

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vnme1/subscription-tracker/internal/subscription"
	"github.com/vnme1/subscription-tracker/internal/transaction"
)

// Service orchestrates detection, snapshot persistence, and change tracking.
type Service struct {
	detector *subscription.Detector
	tracker  *Tracker
	repo     Repository
	changes  ChangeRepository
	now      func() time.Time
}

func NewService(detector *subscription.Detector, repo Repository, changes ChangeRepository) *Service {
	return &Service{
		detector: detector,
		tracker:  NewTracker(),
		repo:     repo,
		changes:  changes,
		now:      time.Now,
	}
}

// WithClock overrides the analysis timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	s.tracker.WithClock(now)

	return s
}

// DetectSubscriptions runs inference only, without touching the store.
func (s *Service) DetectSubscriptions(txs []transaction.Transaction) []subscription.Subscription {
	return s.detector.Detect(txs)
}

// TrackChanges diffs two subscription lists without persisting anything.
func (s *Service) TrackChanges(previous, current []subscription.Subscription) []SubscriptionChange {
	return s.tracker.TrackChanges(previous, current)
}

// AnalyzeAndPersist runs detection over txs, writes the snapshot, and records
// the change events against the immediately preceding snapshot, all inside
// one store transaction. On any failure the whole step rolls back: no partial
// snapshot, no partial change trail.
func (s *Service) AnalyzeAndPersist(ctx context.Context, txs []transaction.Transaction, sourceName string) (*AnalysisHistory, error) {
	if strings.TrimSpace(sourceName) == "" {
		return nil, ErrMissingSource
	}

	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	subs := s.detector.Detect(txs)
	summary := subscription.BuildSummary(subs, s.now())
	h := NewAnalysisHistory(summary, sourceName, len(txs))

	atx, err := s.repo.BeginAnalysis(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin analysis: %w", err)
	}
	defer atx.Rollback()

	// Read the prior snapshot before writing the new one. BeginAnalysis
	// serializes concurrent analyses, so this read is stable until commit.
	recent, err := atx.FindRecent(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	var previous []subscription.Subscription
	if len(recent) > 0 {
		previous = recent[0].Subscriptions
	}

	if err := atx.SaveHistory(ctx, h); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	changes := s.tracker.TrackChanges(previous, subs)
	for i := range changes {
		if err := atx.SaveChange(ctx, &changes[i]); err != nil {
			return nil, fmt.Errorf("save change event: %w", err)
		}
	}

	if err := atx.Commit(); err != nil {
		return nil, fmt.Errorf("commit analysis: %w", err)
	}

	slog.Info("analysis persisted",
		"id", h.ID,
		"source", sourceName,
		"transactions", h.TransactionCount,
		"subscriptions", h.SubscriptionCount,
		"changes", len(changes),
	)

	return h, nil
}

// RecentHistory returns the latest snapshots, most recent first.
func (s *Service) RecentHistory(ctx context.Context, limit int) ([]*AnalysisHistory, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	return s.repo.FindRecent(ctx, limit)
}

// HistoryByID loads one snapshot with its subscriptions.
func (s *Service) HistoryByID(ctx context.Context, id uuid.UUID) (*AnalysisHistory, error) {
	return s.repo.FindByID(ctx, id)
}

// DeleteHistory removes a snapshot and, via cascade, its subscriptions.
func (s *Service) DeleteHistory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	slog.Info("analysis history deleted", "id", id)

	return nil
}

// CompareHistory diffs two stored snapshots; order of the arguments does not
// matter, Compare reorders by analysis date.
func (s *Service) CompareHistory(ctx context.Context, olderID, newerID uuid.UUID) (*ComparisonResult, error) {
	older, err := s.repo.FindByID(ctx, olderID)
	if err != nil {
		return nil, err
	}

	newer, err := s.repo.FindByID(ctx, newerID)
	if err != nil {
		return nil, err
	}

	return Compare(older, newer), nil
}

// SubscriptionsByService returns the stored per-run subscription rows for one
// service name, most recent first.
func (s *Service) SubscriptionsByService(ctx context.Context, serviceName string) ([]subscription.Subscription, error) {
	if strings.TrimSpace(serviceName) == "" {
		return nil, ErrMissingID
	}

	return s.repo.FindSubscriptionsByService(ctx, serviceName)
}

// RecentChanges returns the latest change events, most recent first.
func (s *Service) RecentChanges(ctx context.Context, limit int) ([]*SubscriptionChange, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	return s.changes.FindRecent(ctx, limit)
}

// ChangesBySubscription returns the change trail of one subscription row.
func (s *Service) ChangesBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*SubscriptionChange, error) {
	return s.changes.FindBySubscriptionID(ctx, subscriptionID)
}

func validateLimit(limit int) error {
	if limit <= 0 || limit > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	return nil
}
