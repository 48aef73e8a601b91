package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	recurringDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/recurring"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetAll(userID int64) ([]*recurringDatamodel.RecurringExpense, error) {
	var templates []*recurringDatamodel.RecurringExpense
	err := r.db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring expenses: %w", err)
	}
	return templates, nil
}

func (r *Repository) GetActive(userID int64) ([]*recurringDatamodel.RecurringExpense, error) {
	var templates []*recurringDatamodel.RecurringExpense
	err := r.db.
		Preload("Category").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active recurring expenses: %w", err)
	}
	return templates, nil
}

func (r *Repository) GetByID(id, userID int64) (*recurringDatamodel.RecurringExpense, error) {
	var template recurringDatamodel.RecurringExpense
	err := r.db.
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recurring expense: %w", err)
	}
	return &template, nil
}

func (r *Repository) Create(template *recurringDatamodel.RecurringExpense) error {
	if err := r.db.Create(template).Error; err != nil {
		return fmt.Errorf("failed to create recurring expense: %w", err)
	}
	return nil
}

func (r *Repository) Update(template *recurringDatamodel.RecurringExpense) error {
	if err := r.db.Omit("Category").Save(template).Error; err != nil {
		return fmt.Errorf("failed to update recurring expense: %w", err)
	}
	return nil
}

func (r *Repository) Delete(id, userID int64) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&recurringDatamodel.RecurringExpense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recurring expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
