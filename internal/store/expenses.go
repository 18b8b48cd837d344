package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anirudh/expense-tracker/backend/internal/models"
)

func (s *PostgresStore) CreateExpense(ctx context.Context, userID int64, category string, date models.Date, amount float64, description string) (*models.Expense, error) {
	e := models.Expense{
		UserID:      userID,
		Category:    category,
		Date:        date,
		Amount:      amount,
		Description: description,
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO expenses (user_id, category, date, amount, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING expense_id`,
		userID, category, date, amount, description,
	).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &e, nil
}

// ListExpenses returns all of a user's expenses, newest date first.
func (s *PostgresStore) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	rows, err := s.db.Query(ctx,
		`SELECT expense_id, user_id, category, date, amount, description
		 FROM expenses WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Date, &e.Amount, &e.Description); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetExpense fetches one expense scoped by id and owner. A row owned by a
// different user yields ErrNotFound.
func (s *PostgresStore) GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	var e models.Expense
	err := s.db.QueryRow(ctx,
		`SELECT expense_id, user_id, category, date, amount, description
		 FROM expenses WHERE expense_id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&e.ID, &e.UserID, &e.Category, &e.Date, &e.Amount, &e.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense updates an expense scoped by id and owner and returns the
// affected row count. Zero means not found or not owned.
func (s *PostgresStore) UpdateExpense(ctx context.Context, id, userID int64, category string, date models.Date, amount float64, description string) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE expenses SET category = $1, date = $2, amount = $3, description = $4
		 WHERE expense_id = $5 AND user_id = $6`,
		category, date, amount, description, id, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteExpenses removes the given expenses owned by the user and returns
// the affected row count.
func (s *PostgresStore) DeleteExpenses(ctx context.Context, ids []int64, userID int64) (int64, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM expenses WHERE expense_id = ANY($1) AND user_id = $2`,
		ids, userID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SumExpenses totals a user's expense amounts, 0 when there are none.
func (s *PostgresStore) SumExpenses(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`,
		userID,
	).Scan(&total)
	return total, err
}

// ExpenseTransactions projects a user's expenses into the combined
// transactions view, with the category as the description.
func (s *PostgresStore) ExpenseTransactions(ctx context.Context, userID int64) ([]models.Transaction, error) {
	rows, err := s.db.Query(ctx,
		`SELECT category, date, amount FROM expenses WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		t := models.Transaction{Type: models.TransactionExpense}
		if err := rows.Scan(&t.Description, &t.Date, &t.Amount); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
