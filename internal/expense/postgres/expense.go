package postgres

import (
	"gorm.io/gorm"

	expenseDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/expense"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/expense"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) GetByPeriod(userID int64, month period.Month) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Preload("Category").
		Where("user_id = ? AND period = ?", userID, month).
		Order("created_at ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByID(id, userID int64) (*expenseDatamodel.Expense, error) {
	var exp expenseDatamodel.Expense
	err := r.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&exp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepository) GetRecent(userID int64, limit int) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Create(exp *expenseDatamodel.Expense) error {
	return r.db.Create(exp).Error
}

// CreateAll inserts a batch of expenses in a single transaction so a failed
// insert leaves nothing behind.
func (r *ExpenseRepository) CreateAll(expenses []*expenseDatamodel.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, exp := range expenses {
			if err := tx.Create(exp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExpenseRepository) Update(exp *expenseDatamodel.Expense) error {
	return r.db.Omit("Category").Save(exp).Error
}

func (r *ExpenseRepository) Delete(id, userID int64) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&expenseDatamodel.Expense{}).Error
}

// DistinctYears extracts the calendar years that have expense rows. Periods
// are stored as "YYYY-MM" so the year is the first four characters.
func (r *ExpenseRepository) DistinctYears(userID int64) ([]int, error) {
	var years []int
	err := r.db.Model(&expenseDatamodel.Expense{}).
		Where("user_id = ?", userID).
		Distinct("CAST(SUBSTRING(period, 1, 4) AS INTEGER)").
		Pluck("CAST(SUBSTRING(period, 1, 4) AS INTEGER)", &years).Error
	return years, err
}
