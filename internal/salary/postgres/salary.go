package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	salaryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/salary"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(userID int64) ([]*salaryDatamodel.Salary, error) {
	var salaries []*salaryDatamodel.Salary
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&salaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get salaries: %w", err)
	}
	return salaries, nil
}

func (r *Repository) GetByID(id, userID int64) (*salaryDatamodel.Salary, error) {
	var salary salaryDatamodel.Salary
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&salary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get salary: %w", err)
	}
	return &salary, nil
}

func (r *Repository) GetActive(userID int64) (*salaryDatamodel.Salary, error) {
	var salary salaryDatamodel.Salary
	err := r.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&salary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active salary: %w", err)
	}
	return &salary, nil
}

func (r *Repository) Create(salary *salaryDatamodel.Salary) error {
	if err := r.db.Create(salary).Error; err != nil {
		return fmt.Errorf("failed to create salary: %w", err)
	}
	return nil
}

func (r *Repository) Update(salary *salaryDatamodel.Salary) error {
	if err := r.db.Save(salary).Error; err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	return nil
}

// Activate flips the given salary to active and every other salary of the
// user to inactive inside one transaction, so exactly one stays active.
func (r *Repository) Activate(id, userID int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&salaryDatamodel.Salary{}).
			Where("user_id = ? AND id != ?", userID, id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&salaryDatamodel.Salary{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to activate salary: %w", err)
	}
	return nil
}

func (r *Repository) Delete(id, userID int64) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&salaryDatamodel.Salary{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete salary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
