package finance

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/anirudh/expense-tracker/backend/internal/auth"
	"github.com/anirudh/expense-tracker/backend/internal/models"
	"github.com/anirudh/expense-tracker/backend/internal/store"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// CreateExpense records a new expense for the authenticated user.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	fields, date := validateExpense(req)
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(), userID, req.Category, date, *req.Amount, req.Description)
	if err != nil {
		log.Printf("create expense: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error adding expense")
		return
	}

	web.JSON(w, http.StatusCreated, expense)
}

// ListExpenses returns all of the authenticated user's expenses, newest
// date first.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	expenses, err := h.expenses.ListExpenses(r.Context(), userID)
	if err != nil {
		log.Printf("list expenses: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching expenses")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	web.JSON(w, http.StatusOK, expenses)
}

// GetExpense returns a single expense owned by the authenticated user.
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, ok := urlID(r)
	if !ok {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Expense not found")
		return
	}

	expense, err := h.expenses.GetExpense(r.Context(), id, userID)
	if errors.Is(err, store.ErrNotFound) {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Expense not found")
		return
	}
	if err != nil {
		log.Printf("get expense: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching expense")
		return
	}

	web.JSON(w, http.StatusOK, expense)
}

// UpdateExpense updates an expense owned by the authenticated user. Zero
// affected rows means not found or not owned.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, ok := urlID(r)
	if !ok {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Expense not found")
		return
	}

	var req models.ExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	fields, date := validateExpense(req)
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	affected, err := h.expenses.UpdateExpense(r.Context(), id, userID, req.Category, date, *req.Amount, req.Description)
	if err != nil {
		log.Printf("update expense: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error updating expense")
		return
	}
	if affected == 0 {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Expense not found")
		return
	}

	web.Message(w, http.StatusOK, "Expense updated successfully")
}

// DeleteExpenses removes a non-empty set of the authenticated user's
// expenses in one statement.
func (h *Handler) DeleteExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.DeleteExpensesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	if len(req.ExpenseIDs) == 0 {
		web.ValidationFailed(w, []web.FieldError{
			{Field: "expenseIds", Message: "No expenses to delete"},
		})
		return
	}

	affected, err := h.expenses.DeleteExpenses(r.Context(), req.ExpenseIDs, userID)
	if err != nil {
		log.Printf("delete expenses: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error deleting expenses")
		return
	}
	if affected == 0 {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "No expenses found to delete")
		return
	}

	web.Message(w, http.StatusOK, "Expenses deleted successfully")
}
