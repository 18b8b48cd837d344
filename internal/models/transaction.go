package models

// TransactionType tags a row in the combined transactions view.
const (
	TransactionExpense = "Expense"
	TransactionBudget  = "Budget"
)

// Transaction is one row of the combined expenses + budgets view returned
// by GET /transactions. Expenses use their category as the description;
// budgets use the formatted "<start> to <end>" range and their end date.
type Transaction struct {
	Description string  `json:"description"`
	Date        Date    `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"transaction"`
}
