package expense

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/moneywatch/moneywatch/internal/core/period"
)

// CreateExpenseDTO represents the request payload for creating an expense.
// The period assigned here is final: edits never move an expense to another
// month.
type CreateExpenseDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Period      period.Month    `json:"yearMonth"`
	Bank        string          `json:"bank,omitempty"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	if dto.Period.IsZero() {
		return errors.New("yearMonth is required")
	}
	return nil
}

// UpdateExpenseDTO carries the editable fields of an expense. The owning
// period and the recurring origin are deliberately absent.
type UpdateExpenseDTO struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Bank        *string          `json:"bank,omitempty"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name must not be empty")
	}
	if dto.Amount != nil && dto.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	return nil
}

// UpdatePaidStatusDTO toggles the paid flag of an expense.
type UpdatePaidStatusDTO struct {
	Paid bool `json:"paid"`
}
