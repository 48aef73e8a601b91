package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	userDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/user"
	"github.com/moneywatch/moneywatch/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.FromDataModel(&dm), nil
}
