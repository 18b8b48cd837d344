// Package finance holds the expense, budget, and aggregate HTTP handlers.
// Every operation is scoped to the authenticated user; rows owned by
// other users are reported as not found.
package finance

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/anirudh/expense-tracker/backend/internal/models"
)

// ExpenseStore defines the interface for expense persistence.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, userID int64, category string, date models.Date, amount float64, description string) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error)
	GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id, userID int64, category string, date models.Date, amount float64, description string) (int64, error)
	DeleteExpenses(ctx context.Context, ids []int64, userID int64) (int64, error)
	SumExpenses(ctx context.Context, userID int64) (float64, error)
	ExpenseTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
}

// BudgetStore defines the interface for budget persistence.
type BudgetStore interface {
	CreateBudget(ctx context.Context, userID int64, startDate, endDate models.Date, amount float64) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error)
	GetBudget(ctx context.Context, id, userID int64) (*models.Budget, error)
	UpdateBudget(ctx context.Context, id, userID int64, startDate, endDate models.Date, amount float64) (int64, error)
	DeleteBudgets(ctx context.Context, ids []int64, userID int64) (int64, error)
	SumBudgets(ctx context.Context, userID int64) (float64, error)
	BudgetTransactions(ctx context.Context, userID int64) ([]models.Transaction, error)
}

// Handler holds expense and budget HTTP handlers.
type Handler struct {
	expenses ExpenseStore
	budgets  BudgetStore
}

func NewHandler(expenses ExpenseStore, budgets BudgetStore) *Handler {
	return &Handler{expenses: expenses, budgets: budgets}
}

// urlID parses the {id} route parameter. A malformed id behaves like a
// row that doesn't exist.
func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
