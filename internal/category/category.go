package category

import (
	"time"

	categoryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/category"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCategory(userID int64, dto CreateCategoryDTO) *Category {
	now := time.Now()
	return &Category{
		Name:        dto.Name,
		Description: dto.Description,
		Color:       dto.Color,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *Category) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

func ToDataModel(c *Category, userID int64) *categoryDatamodel.Category {
	return &categoryDatamodel.Category{
		ID:          c.ID,
		UserID:      userID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}
