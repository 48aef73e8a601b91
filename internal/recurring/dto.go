package recurring

import (
	"errors"

	"github.com/shopspring/decimal"
)

// CreateRecurringExpenseDTO is the request payload for creating a template.
type CreateRecurringExpenseDTO struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	DueDayOfMonth int             `json:"dueDayOfMonth"`
}

func (dto CreateRecurringExpenseDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	// 29-31 are allowed and clamp to the last day of shorter months
	if dto.DueDayOfMonth < 1 || dto.DueDayOfMonth > 31 {
		return errors.New("dueDayOfMonth must be between 1 and 31")
	}
	return nil
}

// UpdateRecurringExpenseDTO carries the editable fields of a template.
type UpdateRecurringExpenseDTO struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CategoryID    *int64           `json:"categoryId,omitempty"`
	DueDayOfMonth *int             `json:"dueDayOfMonth,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

func (dto UpdateRecurringExpenseDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name must not be empty")
	}
	if dto.Amount != nil && dto.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	if dto.DueDayOfMonth != nil && (*dto.DueDayOfMonth < 1 || *dto.DueDayOfMonth > 31) {
		return errors.New("dueDayOfMonth must be between 1 and 31")
	}
	return nil
}
