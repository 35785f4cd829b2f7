package budgeting

import (
	"errors"
	"fmt"
)

var (
	ErrBudgetIDRequired  = errors.New("budget ID is required")
	ErrBudgetNotFound    = errors.New("budget not found")
	ErrInvalidStatus     = errors.New("invalid budget status filter")
	ErrDatabaseOperation = errors.New("database operation error")
)

// BudgetError é um erro com contexto adicional para orçamentos
type BudgetError struct {
	Err      error
	Code     string
	BudgetID int64
	Details  string
}

func (e *BudgetError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *BudgetError) Unwrap() error {
	return e.Err
}

func NewBudgetError(err error, code string, budgetID int64, details string) *BudgetError {
	return &BudgetError{
		Err:      err,
		Code:     code,
		BudgetID: budgetID,
		Details:  details,
	}
}
