package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vnme1/subscription-tracker/internal/history"
	"github.com/vnme1/subscription-tracker/internal/subscription"
)

// analysisLockKey serializes concurrent analyze-and-persist runs. Every
// analysis must read "the previous snapshot" at a stable point, so they all
// contend on one advisory lock.
const analysisLockKey = int64(0x5355_4254) // "SUBT"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectHistoryColumns = `
	id, analysis_date, file_name, transaction_count, subscription_count,
	monthly_total, annual_projection, created_at
`

func scanHistory(s scanner) (*history.AnalysisHistory, error) {
	var h history.AnalysisHistory

	if err := s.Scan(
		&h.ID, &h.AnalysisDate, &h.FileName, &h.TransactionCount,
		&h.SubscriptionCount, &h.MonthlyTotal, &h.AnnualProjection, &h.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &h, nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*history.AnalysisHistory, error) {
	return findByID(ctx, s.db, id)
}

func findByID(ctx context.Context, q querier, id uuid.UUID) (*history.AnalysisHistory, error) {
	query := `SELECT ` + selectHistoryColumns + ` FROM analysis_history WHERE id = $1`

	h, err := scanHistory(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, history.ErrNotFound
		}

		return nil, fmt.Errorf("finding analysis history: %w", err)
	}

	subs, err := loadSubscriptions(ctx, q, h.ID)
	if err != nil {
		return nil, err
	}

	h.Subscriptions = subs

	return h, nil
}

func (s *Store) FindRecent(ctx context.Context, limit int) ([]*history.AnalysisHistory, error) {
	return findRecent(ctx, s.db, limit)
}

func findRecent(ctx context.Context, q querier, limit int) ([]*history.AnalysisHistory, error) {
	query := `SELECT ` + selectHistoryColumns + `
		FROM analysis_history
		ORDER BY analysis_date DESC
		LIMIT $1`

	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing analysis history: %w", err)
	}
	defer rows.Close()

	var histories []*history.AnalysisHistory

	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis history: %w", err)
		}

		histories = append(histories, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analysis history: %w", err)
	}

	for _, h := range histories {
		subs, err := loadSubscriptions(ctx, q, h.ID)
		if err != nil {
			return nil, err
		}

		h.Subscriptions = subs
	}

	return histories, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	// subscription_history rows go with it via ON DELETE CASCADE.
	result, err := s.db.ExecContext(ctx, `DELETE FROM analysis_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting analysis history: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting analysis history: %w", err)
	}

	if affected == 0 {
		return history.ErrNotFound
	}

	return nil
}

const selectSubscriptionColumns = `
	subscription_id, service_name, monthly_amount, last_amount, billing_cycle,
	status, first_detected_date, last_charge_date, next_charge_date,
	transaction_count, total_spent
`

func scanSubscription(s scanner) (subscription.Subscription, error) {
	var (
		sub        subscription.Subscription
		cycle      string
		status     string
		nextCharge sql.NullTime
	)

	if err := s.Scan(
		&sub.ID, &sub.ServiceName, &sub.MonthlyAmount, &sub.LastAmount, &cycle,
		&status, &sub.FirstDetectedDate, &sub.LastChargeDate, &nextCharge,
		&sub.TransactionCount, &sub.TotalSpent,
	); err != nil {
		return subscription.Subscription{}, err
	}

	sub.BillingCycle = subscription.BillingCycle(cycle)
	sub.Status = subscription.Status(status)

	if nextCharge.Valid {
		next := nextCharge.Time
		sub.NextChargeDate = &next
	}

	return sub, nil
}

func loadSubscriptions(ctx context.Context, q querier, analysisID uuid.UUID) ([]subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + `
		FROM subscription_history
		WHERE analysis_id = $1
		ORDER BY created_at ASC, service_name ASC`

	rows, err := q.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription

	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}

	return subs, nil
}

func (s *Store) FindSubscriptionsByService(ctx context.Context, serviceName string) ([]subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + `
		FROM subscription_history
		WHERE service_name = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, serviceName)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions by service: %w", err)
	}
	defer rows.Close()

	var subs []subscription.Subscription

	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscriptions: %w", err)
	}

	return subs, nil
}

type analysisTx struct {
	tx *sql.Tx
}

// BeginAnalysis opens a serializable transaction and takes the analysis
// advisory lock, so concurrent analyses queue up around the
// read-previous/write-new sequence instead of racing it.
func (s *Store) BeginAnalysis(ctx context.Context) (history.AnalysisTx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, fmt.Errorf("beginning analysis tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", analysisLockKey); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring analysis lock: %w", err)
	}

	return &analysisTx{tx: tx}, nil
}

func (a *analysisTx) Commit() error   { return a.tx.Commit() }
func (a *analysisTx) Rollback() error { return a.tx.Rollback() }

func (a *analysisTx) FindRecent(ctx context.Context, limit int) ([]*history.AnalysisHistory, error) {
	return findRecent(ctx, a.tx, limit)
}

func (a *analysisTx) SaveHistory(ctx context.Context, h *history.AnalysisHistory) error {
	query := `
		INSERT INTO analysis_history
			(id, analysis_date, file_name, transaction_count, subscription_count,
			 monthly_total, annual_projection, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := a.tx.ExecContext(ctx, query,
		h.ID, h.AnalysisDate, h.FileName, h.TransactionCount,
		h.SubscriptionCount, h.MonthlyTotal, h.AnnualProjection, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving analysis history: %w", err)
	}

	subQuery := `
		INSERT INTO subscription_history
			(id, analysis_id, subscription_id, service_name, monthly_amount,
			 last_amount, billing_cycle, status, first_detected_date,
			 last_charge_date, next_charge_date, transaction_count, total_spent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for i := range h.Subscriptions {
		sub := &h.Subscriptions[i]

		var nextCharge sql.NullTime
		if sub.NextChargeDate != nil {
			nextCharge = sql.NullTime{Time: *sub.NextChargeDate, Valid: true}
		}

		_, err := a.tx.ExecContext(ctx, subQuery,
			uuid.New(), h.ID, sub.ID, sub.ServiceName, sub.MonthlyAmount,
			sub.LastAmount, sub.BillingCycle, sub.Status, sub.FirstDetectedDate,
			sub.LastChargeDate, nextCharge, sub.TransactionCount, sub.TotalSpent,
		)
		if err != nil {
			return fmt.Errorf("saving subscription row: %w", err)
		}
	}

	return nil
}

func (a *analysisTx) SaveChange(ctx context.Context, c *history.SubscriptionChange) error {
	query := `
		INSERT INTO subscription_changes
			(subscription_id, service_name, change_type, old_value, new_value,
			 change_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := a.tx.QueryRowContext(ctx, query,
		c.SubscriptionID, c.ServiceName, c.ChangeType, c.OldValue, c.NewValue,
		c.ChangeDate, c.Notes,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("saving subscription change: %w", err)
	}

	return nil
}

const selectChangeColumns = `
	id, subscription_id, service_name, change_type, old_value, new_value,
	change_date, notes
`

func scanChange(s scanner) (*history.SubscriptionChange, error) {
	var (
		c          history.SubscriptionChange
		changeType string
	)

	if err := s.Scan(
		&c.ID, &c.SubscriptionID, &c.ServiceName, &changeType,
		&c.OldValue, &c.NewValue, &c.ChangeDate, &c.Notes,
	); err != nil {
		return nil, err
	}

	c.ChangeType = history.ChangeType(changeType)

	return &c, nil
}

// ChangeStore reads the append-only change event log.
type ChangeStore struct {
	db *sql.DB
}

func NewChangeStore(db *sql.DB) *ChangeStore {
	return &ChangeStore{db: db}
}

func (s *ChangeStore) FindBySubscriptionID(ctx context.Context, subscriptionID uuid.UUID) ([]*history.SubscriptionChange, error) {
	query := `SELECT ` + selectChangeColumns + `
		FROM subscription_changes
		WHERE subscription_id = $1
		ORDER BY change_date DESC`

	return s.queryChanges(ctx, query, subscriptionID)
}

func (s *ChangeStore) FindRecent(ctx context.Context, limit int) ([]*history.SubscriptionChange, error) {
	query := `SELECT ` + selectChangeColumns + `
		FROM subscription_changes
		ORDER BY change_date DESC
		LIMIT $1`

	return s.queryChanges(ctx, query, limit)
}

func (s *ChangeStore) queryChanges(ctx context.Context, query string, args ...any) ([]*history.SubscriptionChange, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing subscription changes: %w", err)
	}
	defer rows.Close()

	var changes []*history.SubscriptionChange

	for rows.Next() {
		c, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription change: %w", err)
		}

		changes = append(changes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscription changes: %w", err)
	}

	return changes, nil
}
