package domain

import "time"

type BudgetCategory string

const (
	BudgetStatusActive = "active"
	BudgetStatusClosed = "closed"

	BudgetFilterActive  = "active"
	BudgetFilterExpired = "expired"
)

const (
	ExpenseStatusApproved = "approved"
	ExpenseStatusPaid     = "paid"
)

type Budget struct {
	ID            int64          `json:"id"`
	ProjectID     *int64         `json:"projectId"`
	ProjectName   *string        `json:"projectName"`
	Category      BudgetCategory `json:"period"`
	Name          string         `json:"name"`
	PlannedAmount float64        `json:"totalAmount"`
	UsedAmount    float64        `json:"usedAmount"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	AlertRate     float64        `json:"alertRate"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// BudgetUsageMetrics são os campos derivados de um orçamento
type BudgetUsageMetrics struct {
	RemainingAmount float64 `json:"remainingAmount"`
	UsageRate       float64 `json:"usageRate"`
	IsOverBudget    bool    `json:"isOverBudget"`
	IsAlert         bool    `json:"isAlert"`
}

type BudgetListItem struct {
	Budget
	BudgetUsageMetrics
}

type BudgetFilter struct {
	ProjectID *int64
	Status    *string
	Now       time.Time
	Page      PageRequest
}

type Expense struct {
	ID          int64          `json:"id"`
	ProjectID   *int64         `json:"projectId"`
	Category    BudgetCategory `json:"category"`
	Amount      float64        `json:"amount"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	ExpenseDate time.Time      `json:"expenseDate"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type ExpenseFilter struct {
	ProjectID *int64
	Category  *BudgetCategory
	Statuses  []string
	From      *time.Time
	To        *time.Time
}

type CategoryUsage struct {
	Category   BudgetCategory `json:"category"`
	Amount     float64        `json:"amount"`
	Percentage float64        `json:"percentage"`
}

type BudgetUsage struct {
	Budget     *BudgetListItem  `json:"budget"`
	Expenses   []*Expense       `json:"expenses"`
	ByCategory []*CategoryUsage `json:"byCategory"`
}

type BudgetAlert struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	ProjectName     *string   `json:"projectName"`
	TotalAmount     float64   `json:"totalAmount"`
	UsedAmount      float64   `json:"usedAmount"`
	UsageRate       float64   `json:"usageRate"`
	AlertRate       float64   `json:"alertRate"`
	RemainingAmount float64   `json:"remainingAmount"`
	EndDate         time.Time `json:"endDate"`
	DaysRemaining   int       `json:"daysRemaining"`
}
