package ledger

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"feeportal/model"
)

func newSQLStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{SkipDefaultTransaction: true},
	)
	require.NoError(t, err)

	return NewGormStore(gdb), mock
}

// The paid transition must be guarded on the current status: only
// created or pending rows may flip, and the caller learns from the
// affected-row count whether this call did the transition.
func TestGormStoreMarkPaid_StatusGuard(t *testing.T) {
	store, mock := newSQLStore(t)

	mock.ExpectExec(`UPDATE "ledger_entries" SET .+ WHERE order_id = \$6 AND status IN \(\$7,\$8\)`).
		WithArgs("pay_1", "razorpay", "sig_1", model.StatusPaid, sqlmock.AnyArg(),
			"order_1", model.StatusCreated, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := store.MarkPaid(context.Background(), "order_1", "pay_1", "sig_1")
	require.NoError(t, err)
	require.True(t, transitioned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreMarkPaid_DuplicateReturnsFalse(t *testing.T) {
	store, mock := newSQLStore(t)

	// the row is already paid, so the guarded update touches nothing
	mock.ExpectExec(`UPDATE "ledger_entries" SET .+ WHERE order_id = \$6 AND status IN \(\$7,\$8\)`).
		WithArgs("pay_1", "razorpay", "sig_1", model.StatusPaid, sqlmock.AnyArg(),
			"order_1", model.StatusCreated, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := store.MarkPaid(context.Background(), "order_1", "pay_1", "sig_1")
	require.NoError(t, err)
	require.False(t, transitioned)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreMarkFailed_DoesNotRegressPaid(t *testing.T) {
	store, mock := newSQLStore(t)

	// the WHERE clause only admits created/pending rows; a paid row
	// matches nothing and stays paid
	mock.ExpectExec(`UPDATE "ledger_entries" SET .+ WHERE order_id = \$3 AND status IN \(\$4,\$5\)`).
		WithArgs(model.StatusFailed, sqlmock.AnyArg(),
			"order_1", model.StatusCreated, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.MarkFailed(context.Background(), "order_1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ApplyBalance must add to the cumulative figure and clamp the pending
// decrement at zero in the same statement.
func TestGormStoreApplyBalance_ClampsPendingAtZero(t *testing.T) {
	store, mock := newSQLStore(t)

	mock.ExpectExec(`UPDATE "students" SET "amount_paid"=amount_paid \+ \$1,"pending_amount"=GREATEST\(pending_amount - \$2, 0\) WHERE id = \$3`).
		WithArgs(750.00, 750.00, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.ApplyBalance(context.Background(), 7, 750.00)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreApplyBalance_UnknownPayer(t *testing.T) {
	store, mock := newSQLStore(t)

	mock.ExpectExec(`UPDATE "students" SET .+ WHERE id = \$3`).
		WithArgs(500.00, 500.00, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.ApplyBalance(context.Background(), 99, 500.00)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreFindByOrderID_NotFound(t *testing.T) {
	store, mock := newSQLStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE order_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	entry, err := store.FindByOrderID(context.Background(), "order_missing")
	require.Nil(t, entry)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_DeadlineBecomesUnavailable(t *testing.T) {
	store, mock := newSQLStore(t)

	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" ORDER BY created_at DESC`).
		WillReturnError(context.DeadlineExceeded)

	_, err := store.ListAll(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
