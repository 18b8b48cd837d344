package finance

import (
	"github.com/anirudh/expense-tracker/backend/internal/models"
	"github.com/anirudh/expense-tracker/backend/internal/web"
)

// validateExpense checks an expense body and returns the parsed date when
// the date field is valid.
func validateExpense(req models.ExpenseRequest) ([]web.FieldError, models.Date) {
	var fields []web.FieldError
	var date models.Date

	if req.Category == "" {
		fields = append(fields, web.FieldError{Field: "category", Message: "Category is required"})
	}
	if req.Date == "" {
		fields = append(fields, web.FieldError{Field: "date", Message: "Date is required"})
	} else {
		var err error
		date, err = models.ParseDate(req.Date)
		if err != nil {
			fields = append(fields, web.FieldError{Field: "date", Message: "Invalid date format"})
		}
	}
	if req.Amount == nil || *req.Amount < 0 {
		fields = append(fields, web.FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	if req.Description == "" {
		fields = append(fields, web.FieldError{Field: "description", Message: "Description is required"})
	}
	return fields, date
}

// validateBudget checks a budget body and returns the parsed date range.
func validateBudget(req models.BudgetRequest) ([]web.FieldError, models.Date, models.Date) {
	var fields []web.FieldError
	var start, end models.Date

	if req.StartDate == "" {
		fields = append(fields, web.FieldError{Field: "start_date", Message: "Date is required"})
	} else {
		var err error
		start, err = models.ParseDate(req.StartDate)
		if err != nil {
			fields = append(fields, web.FieldError{Field: "start_date", Message: "Invalid date format"})
		}
	}
	if req.EndDate == "" {
		fields = append(fields, web.FieldError{Field: "end_date", Message: "Date is required"})
	} else {
		var err error
		end, err = models.ParseDate(req.EndDate)
		if err != nil {
			fields = append(fields, web.FieldError{Field: "end_date", Message: "Invalid date format"})
		}
	}
	if req.Amount == nil || *req.Amount < 0 {
		fields = append(fields, web.FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	return fields, start, end
}
