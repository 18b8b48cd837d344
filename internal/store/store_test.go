package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirudh/expense-tracker/backend/internal/models"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

func TestCreateUserReturnsGeneratedFields(t *testing.T) {
	s, mock := newMockStore(t)

	createdAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice Smith", "alice@example.com", "alice", "hashed").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

	u, err := s.CreateUser(context.Background(), "Alice Smith", "alice@example.com", "alice", "hashed")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, createdAt, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailOrUsernameNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1 OR username = $1")).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetUserByEmailOrUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTaken(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("alice@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := s.EmailTaken(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpenseScansGeneratedID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs(int64(1), "Food", pgxmock.AnyArg(), 12.5, "lunch").
		WillReturnRows(pgxmock.NewRows([]string{"expense_id"}).AddRow(int64(3)))

	d, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	e, err := s.CreateExpense(context.Background(), 1, "Food", d, 12.5, "lunch")
	require.NoError(t, err)
	assert.Equal(t, int64(3), e.ID)
	assert.Equal(t, int64(1), e.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExpenseNotOwnedMapsToNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE expense_id = $1 AND user_id = $2")).
		WithArgs(int64(3), int64(2)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetExpense(context.Background(), 3, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExpenseReportsAffectedRows(t *testing.T) {
	s, mock := newMockStore(t)

	d, err := models.ParseDate("2024-01-02")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE expenses SET")).
		WithArgs("Travel", pgxmock.AnyArg(), 99.0, "train", int64(3), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE expenses SET")).
		WithArgs("Travel", pgxmock.AnyArg(), 99.0, "train", int64(3), int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	affected, err := s.UpdateExpense(context.Background(), 3, 1, "Travel", d, 99.0, "train")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = s.UpdateExpense(context.Background(), 3, 2, "Travel", d, 99.0, "train")
	require.NoError(t, err)
	assert.Zero(t, affected, "another user's update must not match")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpensesPassesIDSet(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM expenses WHERE expense_id = ANY($1) AND user_id = $2")).
		WithArgs([]int64{1, 3}, int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	affected, err := s.DeleteExpenses(context.Background(), []int64{1, 3}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListExpensesNewestDateFirst(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"expense_id", "user_id", "category", "date", "amount", "description"}).
		AddRow(int64(2), int64(1), "Travel", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 40.0, "train").
		AddRow(int64(1), int64(1), "Food", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12.5, "lunch")
	mock.ExpectQuery(regexp.QuoteMeta("FROM expenses WHERE user_id = $1 ORDER BY date DESC")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	expenses, err := s.ListExpenses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "2024-01-15", expenses[0].Date.String())
	assert.Equal(t, "2024-01-01", expenses[1].Date.String())
	assert.Equal(t, "Travel", expenses[0].Category)
	assert.Equal(t, 12.5, expenses[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBudgetsLatestEndDateFirst(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"budget_id", "user_id", "start_date", "end_date", "amount"}).
		AddRow(int64(2), int64(1),
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 600.0).
		AddRow(int64(1), int64(1),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 500.0)
	mock.ExpectQuery(regexp.QuoteMeta("FROM budgets WHERE user_id = $1 ORDER BY end_date DESC")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	budgets, err := s.ListBudgets(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "2024-02-29", budgets[0].EndDate.String())
	assert.Equal(t, "2024-01-31", budgets[1].EndDate.String())
	assert.Equal(t, 500.0, budgets[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseTransactionsProjection(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"category", "date", "amount"}).
		AddRow("Food", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 12.5)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category, date, amount FROM expenses WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	txs, err := s.ExpenseTransactions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Food", txs[0].Description)
	assert.Equal(t, models.TransactionExpense, txs[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetTransactionsProjection(t *testing.T) {
	s, mock := newMockStore(t)

	rows := pgxmock.NewRows([]string{"start_date", "end_date", "amount"}).
		AddRow(
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 500.0)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_date, end_date, amount FROM budgets WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	txs, err := s.BudgetTransactions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "2024-01-01 to 2024-01-31", txs[0].Description)
	assert.Equal(t, "2024-01-31", txs[0].Date.String())
	assert.Equal(t, models.TransactionBudget, txs[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumExpenses(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(15.5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	total, err := s.SumExpenses(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 15.5, total)

	total, err = s.SumExpenses(context.Background(), 2)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBudgetScansGeneratedID(t *testing.T) {
	s, mock := newMockStore(t)

	start, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	end, err := models.ParseDate("2024-01-31")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO budgets")).
		WithArgs(int64(1), pgxmock.AnyArg(), pgxmock.AnyArg(), 500.0).
		WillReturnRows(pgxmock.NewRows([]string{"budget_id"}).AddRow(int64(4)))

	b, err := s.CreateBudget(context.Background(), 1, start, end, 500.0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteBudgetsPassesIDSet(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM budgets WHERE budget_id = ANY($1) AND user_id = $2")).
		WithArgs([]int64{4}, int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	affected, err := s.DeleteBudgets(context.Background(), []int64{4}, 1)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumBudgets(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM budgets WHERE user_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(500.0))

	total, err := s.SumBudgets(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateRunsAllTables(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS expenses").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS budgets").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
