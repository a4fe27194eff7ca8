package postgres

import (
	"context"
	"fmt"

	"github.com/TiltTrack/tilt-track-backend/internal/store"
	"github.com/jackc/pgx/v5"
)

// quotaRowID is the fixed key of the single shared counter row.
const quotaRowID = 1

// TxBeginner is the subset of pgxpool.Pool needed to open transactions.
// pgxmock satisfies it too.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// FeedbackQuotaStore implements store.FeedbackQuotaStore on Postgres. The
// counter row is locked FOR UPDATE for the duration of the transaction, so
// concurrent submissions serialize on it and can never both pass the limit
// check at count = limit-1.
type FeedbackQuotaStore struct {
	db TxBeginner
}

var _ store.FeedbackQuotaStore = (*FeedbackQuotaStore)(nil)

// NewFeedbackQuotaStore creates a quota store backed by the given pool.
func NewFeedbackQuotaStore(db TxBeginner) *FeedbackQuotaStore {
	return &FeedbackQuotaStore{db: db}
}

// Begin opens a transaction against the counter row.
func (s *FeedbackQuotaStore) Begin(ctx context.Context) (store.QuotaTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin quota transaction: %w", err)
	}
	return &quotaTx{tx: tx}, nil
}

type quotaTx struct {
	tx pgx.Tx
}

// EffectiveCount seeds the counter row if it has never existed, locks it, and
// returns the count valid for today. A stale reset date reads as zero.
func (t *quotaTx) EffectiveCount(ctx context.Context, today string) (int, error) {
	// The row must exist before FOR UPDATE can lock it; two first-ever
	// submissions would otherwise both see no row and race the insert.
	_, err := t.tx.Exec(ctx,
		`INSERT INTO feedback_quota (id, count, reset_date) VALUES ($1, 0, $2)
		 ON CONFLICT (id) DO NOTHING`,
		quotaRowID, today,
	)
	if err != nil {
		return 0, fmt.Errorf("seed quota row: %w", err)
	}

	var count int
	var resetDate string
	err = t.tx.QueryRow(ctx,
		`SELECT count, reset_date FROM feedback_quota WHERE id = $1 FOR UPDATE`,
		quotaRowID,
	).Scan(&count, &resetDate)
	if err != nil {
		return 0, fmt.Errorf("lock quota row: %w", err)
	}

	if resetDate != today {
		return 0, nil
	}
	return count, nil
}

// SetCount writes the counter for today. Only valid after EffectiveCount has
// locked the row in this transaction.
func (t *quotaTx) SetCount(ctx context.Context, today string, count int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE feedback_quota SET count = $1, reset_date = $2 WHERE id = $3`,
		count, today, quotaRowID,
	)
	if err != nil {
		return fmt.Errorf("update quota row: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (t *quotaTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *quotaTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
