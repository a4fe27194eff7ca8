package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TiltTrack/tilt-track-backend/internal/store"
)

const testToday = "2025-06-15"

func setupQuotaMock(t *testing.T) (pgxmock.PgxPoolIface, *FeedbackQuotaStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewFeedbackQuotaStore(mock)
}

func expectSeedAndLock(mock pgxmock.PgxPoolIface, count int, resetDate string) {
	mock.ExpectExec(`INSERT INTO feedback_quota`).
		WithArgs(quotaRowID, testToday).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(`SELECT count, reset_date FROM feedback_quota WHERE id = \$1 FOR UPDATE`).
		WithArgs(quotaRowID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "reset_date"}).AddRow(count, resetDate))
}

func TestQuotaEffectiveCountToday(t *testing.T) {
	mock, quotaStore := setupQuotaMock(t)

	mock.ExpectBegin()
	expectSeedAndLock(mock, 42, testToday)
	mock.ExpectRollback()

	tx, err := quotaStore.Begin(context.Background())
	require.NoError(t, err)

	count, err := tx.EffectiveCount(context.Background(), testToday)
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaStaleDateReadsAsZero(t *testing.T) {
	mock, quotaStore := setupQuotaMock(t)

	mock.ExpectBegin()
	expectSeedAndLock(mock, 100, "2025-06-14")
	mock.ExpectRollback()

	tx, err := quotaStore.Begin(context.Background())
	require.NoError(t, err)

	count, err := tx.EffectiveCount(context.Background(), testToday)
	require.NoError(t, err)
	assert.Zero(t, count, "yesterday's count must not carry over")

	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaIncrementCommits(t *testing.T) {
	mock, quotaStore := setupQuotaMock(t)

	mock.ExpectBegin()
	expectSeedAndLock(mock, 7, testToday)
	mock.ExpectExec(`UPDATE feedback_quota SET count = \$1, reset_date = \$2 WHERE id = \$3`).
		WithArgs(8, testToday, quotaRowID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tx, err := quotaStore.Begin(context.Background())
	require.NoError(t, err)

	count, err := tx.EffectiveCount(context.Background(), testToday)
	require.NoError(t, err)

	require.NoError(t, tx.SetCount(context.Background(), testToday, count+1))
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaSetCountMissingRow(t *testing.T) {
	mock, quotaStore := setupQuotaMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE feedback_quota`).
		WithArgs(1, testToday, quotaRowID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	tx, err := quotaStore.Begin(context.Background())
	require.NoError(t, err)

	err = tx.SetCount(context.Background(), testToday, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaBeginError(t *testing.T) {
	mock, quotaStore := setupQuotaMock(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := quotaStore.Begin(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
