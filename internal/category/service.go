package category

import (
	"log/slog"

	"github.com/moneywatch/moneywatch/internal"
	categoryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll(userID int64) ([]*categoryDatamodel.Category, error)
	GetByID(id, userID int64) (*categoryDatamodel.Category, error)
	Create(category *categoryDatamodel.Category) error
	Deactivate(id, userID int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories returns the user's active categories.
func (s *Service) GetAllCategories(userID int64) ([]*Category, error) {
	dataCategories, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "user_id", userID)
		return nil, err
	}

	categories := make([]*Category, 0, len(dataCategories))
	for _, dc := range dataCategories {
		if dc.IsActive {
			categories = append(categories, FromDataModel(dc))
		}
	}

	return categories, nil
}

func (s *Service) CreateCategory(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("category validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	cat := NewCategory(userID, dto)
	dataCat := ToDataModel(cat, userID)
	if err := s.repo.Create(dataCat); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	cat.ID = dataCat.ID
	s.logger.Info("category created", "category_id", cat.ID, "user_id", userID, "name", cat.Name)
	return cat, nil
}

// DeleteCategory soft-deletes a category. Expenses keep their reference and
// fall back to the uncategorized label in reports.
func (s *Service) DeleteCategory(id, userID int64) error {
	existing, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to look up category", "error", err, "category_id", id)
		return err
	}
	if existing == nil {
		return internal.ErrCategoryNotFound
	}

	if err := s.repo.Deactivate(id, userID); err != nil {
		s.logger.Error("failed to deactivate category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deactivated", "category_id", id, "user_id", userID)
	return nil
}
