package models

// Budget represents a row in the budgets table. A budget covers a date
// range; start_date <= end_date is expected but not enforced.
type Budget struct {
	ID        int64   `json:"budget_id"`
	UserID    int64   `json:"user_id"`
	StartDate Date    `json:"start_date"`
	EndDate   Date    `json:"end_date"`
	Amount    float64 `json:"amount"`
}

// BudgetRequest is the JSON body for POST /budget and PUT /budget/{id}.
type BudgetRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Amount    *float64 `json:"amount"`
}

// DeleteBudgetsRequest is the JSON body for DELETE /budgets.
type DeleteBudgetsRequest struct {
	BudgetIDs []int64 `json:"budgetIds"`
}
