package salary

import (
	"errors"

	"github.com/shopspring/decimal"
)

type CreateSalaryDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (dto CreateSalaryDTO) Validate() error {
	if dto.Amount.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	return nil
}

type UpdateSalaryDTO struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (dto UpdateSalaryDTO) Validate() error {
	if dto.Amount != nil && dto.Amount.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	return nil
}
