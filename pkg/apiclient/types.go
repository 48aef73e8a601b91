package apiclient

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types mirror the server's JSON responses. Periods are "YYYY-MM"
// strings on the wire.

type CategoryRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type Expense struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"yearMonth"`
	Bank        string          `json:"bank,omitempty"`
	Category    *CategoryRef    `json:"category,omitempty"`
	RecurringID *int64          `json:"recurringId,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Paid        bool            `json:"paid"`
}

type CreateExpenseRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"yearMonth"`
	Bank        string          `json:"bank,omitempty"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
}

type UpdateExpenseRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Bank        *string          `json:"bank,omitempty"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type RecurringExpense struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	DueDayOfMonth int             `json:"dueDayOfMonth"`
	IsActive      bool            `json:"isActive"`
}

type CreateRecurringExpenseRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	DueDayOfMonth int             `json:"dueDayOfMonth"`
}

type UpdateRecurringExpenseRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CategoryID    *int64           `json:"categoryId,omitempty"`
	DueDayOfMonth *int             `json:"dueDayOfMonth,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

type Salary struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
}

type CreateSalaryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

type Summary struct {
	Salary        decimal.Decimal `json:"salary"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Remaining     decimal.Decimal `json:"remaining"`
	PercentUsed   float64         `json:"percentUsed"`
	RatioValid    bool            `json:"ratioValid"`
	Severity      string          `json:"severity"`
}

type CategorySlice struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
