package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Salary struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"column:user_id;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric;not null"`
	Description string          `gorm:"column:description"`
	IsActive    bool            `gorm:"column:is_active;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Salary) TableName() string {
	return "salaries"
}
