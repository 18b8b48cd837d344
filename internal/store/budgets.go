package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anirudh/expense-tracker/backend/internal/models"
)

func (s *PostgresStore) CreateBudget(ctx context.Context, userID int64, startDate, endDate models.Date, amount float64) (*models.Budget, error) {
	b := models.Budget{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Amount:    amount,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO budgets (user_id, start_date, end_date, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING budget_id`,
		userID, startDate, endDate, amount,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return &b, nil
}

// ListBudgets returns all of a user's budgets, latest end date first.
func (s *PostgresStore) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	rows, err := s.db.Query(ctx,
		`SELECT budget_id, user_id, start_date, end_date, amount
		 FROM budgets WHERE user_id = $1 ORDER BY end_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.StartDate, &b.EndDate, &b.Amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// GetBudget fetches one budget scoped by id and owner.
func (s *PostgresStore) GetBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	var b models.Budget
	err := s.db.QueryRow(ctx,
		`SELECT budget_id, user_id, start_date, end_date, amount
		 FROM budgets WHERE budget_id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&b.ID, &b.UserID, &b.StartDate, &b.EndDate, &b.Amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBudget updates a budget scoped by id and owner and returns the
// affected row count. Zero means not found or not owned.
func (s *PostgresStore) UpdateBudget(ctx context.Context, id, userID int64, startDate, endDate models.Date, amount float64) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE budgets SET start_date = $1, end_date = $2, amount = $3
		 WHERE budget_id = $4 AND user_id = $5`,
		startDate, endDate, amount, id, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteBudgets removes the given budgets owned by the user and returns
// the affected row count.
func (s *PostgresStore) DeleteBudgets(ctx context.Context, ids []int64, userID int64) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM budgets WHERE budget_id = ANY($1) AND user_id = $2`,
		ids, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SumBudgets totals a user's budget amounts, 0 when there are none.
func (s *PostgresStore) SumBudgets(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM budgets WHERE user_id = $1`,
		userID,
	).Scan(&total)
	return total, err
}

// BudgetTransactions projects a user's budgets into the combined
// transactions view: the date range becomes the description and the end
// date stands in for the transaction date.
func (s *PostgresStore) BudgetTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	rows, err := s.db.Query(ctx,
		`SELECT start_date, end_date, amount FROM budgets WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var start, end models.Date
		t := models.Transaction{Type: models.TransactionBudget}
		if err := rows.Scan(&start, &end, &t.Amount); err != nil {
			return nil, err
		}
		t.Description = fmt.Sprintf("%s to %s", start, end)
		t.Date = end
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
