package category

import (
	"errors"
	"regexp"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CreateCategoryDTO represents the request payload for creating a category
type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 100 {
		return errors.New("name must be less than 100 characters")
	}
	if dto.Color != "" && !hexColor.MatchString(dto.Color) {
		return errors.New("color must be a hex value like #8b5cf6")
	}
	return nil
}
