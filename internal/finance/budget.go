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

// CreateBudget records a new budget for the authenticated user.
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	fields, start, end := validateBudget(req)
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	budget, err := h.budgets.CreateBudget(r.Context(), userID, start, end, *req.Amount)
	if err != nil {
		log.Printf("create budget: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error adding budget")
		return
	}

	web.JSON(w, http.StatusCreated, budget)
}

// ListBudgets returns all of the authenticated user's budgets, latest end
// date first.
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	budgets, err := h.budgets.ListBudgets(r.Context(), userID)
	if err != nil {
		log.Printf("list budgets: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching budgets")
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}

	web.JSON(w, http.StatusOK, budgets)
}

// GetBudget returns a single budget owned by the authenticated user.
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, ok := urlID(r)
	if !ok {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Budget not found")
		return
	}

	budget, err := h.budgets.GetBudget(r.Context(), id, userID)
	if errors.Is(err, store.ErrNotFound) {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Budget not found")
		return
	}
	if err != nil {
		log.Printf("get budget: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error fetching budget")
		return
	}

	web.JSON(w, http.StatusOK, budget)
}

// UpdateBudget updates a budget owned by the authenticated user. Zero
// affected rows means not found or not owned.
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	id, ok := urlID(r)
	if !ok {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Budget not found")
		return
	}

	var req models.BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	fields, start, end := validateBudget(req)
	if len(fields) > 0 {
		web.ValidationFailed(w, fields)
		return
	}

	affected, err := h.budgets.UpdateBudget(r.Context(), id, userID, start, end, *req.Amount)
	if err != nil {
		log.Printf("update budget: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error updating budget")
		return
	}
	if affected == 0 {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "Budget not found")
		return
	}

	web.Message(w, http.StatusOK, "Budget updated successfully")
}

// DeleteBudgets removes a non-empty set of the authenticated user's
// budgets in one statement.
func (h *Handler) DeleteBudgets(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req models.DeleteBudgetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, web.KindValidation, "invalid request body")
		return
	}
	if len(req.BudgetIDs) == 0 {
		web.ValidationFailed(w, []web.FieldError{
			{Field: "budgetIds", Message: "No budgets to delete"},
		})
		return
	}

	affected, err := h.budgets.DeleteBudgets(r.Context(), req.BudgetIDs, userID)
	if err != nil {
		log.Printf("delete budgets: %v", err)
		web.Error(w, http.StatusInternalServerError, web.KindInternal, "Error deleting budgets")
		return
	}
	if affected == 0 {
		web.Error(w, http.StatusNotFound, web.KindNotFound, "No budgets found to delete")
		return
	}

	web.Message(w, http.StatusOK, "Budgets deleted successfully")
}
