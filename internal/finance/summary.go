package finance

import (
	"log"
	"net/http"

	"github.com/anirudh/expense-tracker/backend/internal/auth"
	"github.com/anirudh/expense-tracker/backend/internal/models"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// TotalSpent returns the sum of the authenticated user's expense amounts,
// 0 when there are none.
func (h *Handler) TotalSpent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	total, err := h.expenses.SumExpenses(r.Context(), userID)
	if err != nil {
		log.Printf("sum expenses: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching total spent")
		return
	}

	web.JSON(w, http.StatusOK, map[string]float64{"totalSpent": total})
}

// TotalBudget returns the sum of the authenticated user's budget amounts,
// 0 when there are none.
func (h *Handler) TotalBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	total, err := h.budgets.SumBudgets(r.Context(), userID)
	if err != nil {
		log.Printf("sum budgets: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching total budget")
		return
	}

	web.JSON(w, http.StatusOK, map[string]float64{"totalBudget": total})
}

// Transactions returns the unsorted union of the user's expense and
// budget projections.
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	expenses, err := h.expenses.ExpenseTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("expense transactions: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching transactions")
		return
	}
	budgets, err := h.budgets.BudgetTransactions(r.Context(), userID)
	if err != nil {
		log.Printf("budget transactions: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching transactions")
		return
	}

	transactions := make([]models.Transaction, 0, len(expenses)+len(budgets))
	transactions = append(transactions, expenses...)
	transactions = append(transactions, budgets...)

	web.JSON(w, http.StatusOK, transactions)
}
