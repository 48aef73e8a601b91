package expense

import (
	"time"

	"github.com/shopspring/decimal"

	categoryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/category"
	"github.com/moneywatch/moneywatch/internal/core/period"
)

type Expense struct {
	ID          int64                       `gorm:"primaryKey"`
	UserID      int64                       `gorm:"column:user_id;not null"`
	Name        string                      `gorm:"column:name;not null"`
	Description string                      `gorm:"column:description"`
	Amount      decimal.Decimal             `gorm:"column:amount;type:numeric;not null"`
	Period      period.Month                `gorm:"column:period;not null;index"`
	Bank        string                      `gorm:"column:bank"`
	CategoryID  *int64                      `gorm:"column:category_id"`
	Category    *categoryDatamodel.Category `gorm:"foreignKey:CategoryID"`
	RecurringID *int64                      `gorm:"column:recurring_id"`
	DueDate     *time.Time                  `gorm:"column:due_date;type:date"`
	Paid        bool                        `gorm:"column:paid;default:false"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}
