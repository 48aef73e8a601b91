package recurring

import (
	"time"

	"github.com/shopspring/decimal"

	recurringDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/recurring"
)

// RecurringExpense is a template that stamps out one concrete expense per
// month while active. Generated expenses copy the template's fields at
// generation time; later edits to the template never reach back into months
// that were already materialized.
type RecurringExpense struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	DueDayOfMonth int             `json:"dueDayOfMonth"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewRecurringExpense(dto CreateRecurringExpenseDTO) *RecurringExpense {
	now := time.Now()
	return &RecurringExpense{
		Name:          dto.Name,
		Description:   dto.Description,
		Amount:        dto.Amount,
		CategoryID:    dto.CategoryID,
		DueDayOfMonth: dto.DueDayOfMonth,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func ToDataModel(re *RecurringExpense, userID int64) *recurringDatamodel.RecurringExpense {
	return &recurringDatamodel.RecurringExpense{
		ID:            re.ID,
		UserID:        userID,
		Name:          re.Name,
		Description:   re.Description,
		Amount:        re.Amount,
		CategoryID:    re.CategoryID,
		DueDayOfMonth: re.DueDayOfMonth,
		IsActive:      re.IsActive,
		CreatedAt:     re.CreatedAt,
		UpdatedAt:     re.UpdatedAt,
	}
}

func FromDataModel(re *recurringDatamodel.RecurringExpense) *RecurringExpense {
	return &RecurringExpense{
		ID:            re.ID,
		Name:          re.Name,
		Description:   re.Description,
		Amount:        re.Amount,
		CategoryID:    re.CategoryID,
		DueDayOfMonth: re.DueDayOfMonth,
		IsActive:      re.IsActive,
		CreatedAt:     re.CreatedAt,
		UpdatedAt:     re.UpdatedAt,
	}
}

func FromDataModelSlice(templates []*recurringDatamodel.RecurringExpense) []*RecurringExpense {
	result := make([]*RecurringExpense, len(templates))
	for i, re := range templates {
		result[i] = FromDataModel(re)
	}
	return result
}
