package recurring

import (
	"time"

	"github.com/shopspring/decimal"

	categoryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/category"
)

type RecurringExpense struct {
	ID            int64                       `gorm:"primaryKey"`
	UserID        int64                       `gorm:"column:user_id;not null"`
	Name          string                      `gorm:"column:name;not null"`
	Description   string                      `gorm:"column:description"`
	Amount        decimal.Decimal             `gorm:"column:amount;type:numeric;not null"`
	CategoryID    *int64                      `gorm:"column:category_id"`
	Category      *categoryDatamodel.Category `gorm:"foreignKey:CategoryID"`
	DueDayOfMonth int                         `gorm:"column:due_day_of_month;not null"`
	IsActive      bool                        `gorm:"column:is_active;default:true"`
	CreatedAt     time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (RecurringExpense) TableName() string {
	return "recurring_expenses"
}
