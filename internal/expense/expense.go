package expense

import (
	"time"

	"github.com/shopspring/decimal"

	expenseDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/expense"
	"github.com/moneywatch/moneywatch/internal/core/period"
)

// DefaultBank is used when a payment source is not supplied.
const DefaultBank = "Default Bank"

// CategoryRef is the category information carried on an expense. Nil means
// the expense is uncategorized.
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
	Period      period.Month    `json:"yearMonth"`
	Bank        string          `json:"bank"`
	Category    *CategoryRef    `json:"category,omitempty"`
	RecurringID *int64          `json:"recurringId,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Paid        bool            `json:"paid"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategoryName returns the display name of the expense's category, falling
// back to the uncategorized label when no active category is attached.
func (e *Expense) CategoryName(fallback string) string {
	if e.Category == nil || e.Category.Name == "" {
		return fallback
	}
	return e.Category.Name
}

// IsRecurring reports whether the expense was materialized from a recurring
// template.
func (e *Expense) IsRecurring() bool {
	return e.RecurringID != nil
}

func NewExpense(userID int64, dto CreateExpenseDTO) *Expense {
	bank := dto.Bank
	if bank == "" {
		bank = DefaultBank
	}

	now := time.Now()
	return &Expense{
		Name:        dto.Name,
		Description: dto.Description,
		Amount:      dto.Amount,
		Period:      dto.Period,
		Bank:        bank,
		Paid:        false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(e *Expense, userID int64) *expenseDatamodel.Expense {
	dm := &expenseDatamodel.Expense{
		ID:          e.ID,
		UserID:      userID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		Period:      e.Period,
		Bank:        e.Bank,
		RecurringID: e.RecurringID,
		DueDate:     e.DueDate,
		Paid:        e.Paid,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.Category != nil {
		dm.CategoryID = &e.Category.ID
	}
	return dm
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	exp := &Expense{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		Period:      e.Period,
		Bank:        e.Bank,
		RecurringID: e.RecurringID,
		DueDate:     e.DueDate,
		Paid:        e.Paid,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	// A deactivated category no longer contributes a name, which makes the
	// expense render as uncategorized.
	if e.Category != nil && e.Category.IsActive {
		exp.Category = &CategoryRef{
			ID:    e.Category.ID,
			Name:  e.Category.Name,
			Color: e.Category.Color,
		}
	}
	return exp
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}
