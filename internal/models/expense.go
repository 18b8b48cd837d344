package models

// Expense represents a row in the expenses table. Every expense belongs
// to exactly one user.
type Expense struct {
	ID          int64   `json:"expense_id"`
	UserID      int64   `json:"user_id"`
	Category    string  `json:"category"`
	Date        Date    `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// ExpenseRequest is the JSON body for POST /expense and PUT /expense/{id}.
// Amount is a pointer so a missing field can be told apart from zero.
type ExpenseRequest struct {
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
}

// DeleteExpensesRequest is the JSON body for DELETE /expenses.
type DeleteExpensesRequest struct {
	ExpenseIDs []int64 `json:"expenseIds"`
}
