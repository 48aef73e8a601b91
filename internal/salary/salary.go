package salary

import (
	"time"

	"github.com/shopspring/decimal"

	salaryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/salary"
)

// Salary is a monthly income record. At most one salary per user is
// active at a time; the active one feeds the monthly summary.
type Salary struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewSalary(dto CreateSalaryDTO) *Salary {
	return &Salary{
		Amount:      dto.Amount,
		Description: dto.Description,
		IsActive:    false,
	}
}

func ToDataModel(s *Salary, userID int64) *salaryDatamodel.Salary {
	return &salaryDatamodel.Salary{
		ID:          s.ID,
		UserID:      userID,
		Amount:      s.Amount,
		Description: s.Description,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromDataModel(dm *salaryDatamodel.Salary) *Salary {
	return &Salary{
		ID:          dm.ID,
		Amount:      dm.Amount,
		Description: dm.Description,
		IsActive:    dm.IsActive,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}

func FromDataModelSlice(dms []*salaryDatamodel.Salary) []*Salary {
	salaries := make([]*Salary, 0, len(dms))
	for _, dm := range dms {
		salaries = append(salaries, FromDataModel(dm))
	}
	return salaries
}
