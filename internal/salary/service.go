package salary

import (
	"log/slog"

	"github.com/moneywatch/moneywatch/internal"
	salaryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/salary"
)

// RepositoryAPI defines the data access methods for salaries
type RepositoryAPI interface {
	GetAll(userID int64) ([]*salaryDatamodel.Salary, error)
	GetByID(id, userID int64) (*salaryDatamodel.Salary, error)
	GetActive(userID int64) (*salaryDatamodel.Salary, error)
	Create(salary *salaryDatamodel.Salary) error
	Update(salary *salaryDatamodel.Salary) error
	Activate(id, userID int64) error
	Delete(id, userID int64) error
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

func (s *Service) ListSalaries(userID int64) ([]*Salary, error) {
	data, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to list salaries", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

// GetActiveSalary returns the single active salary, or
// internal.ErrNoActiveSalary when none is set.
func (s *Service) GetActiveSalary(userID int64) (*Salary, error) {
	dm, err := s.repo.GetActive(userID)
	if err != nil {
		s.logger.Error("failed to get active salary", "error", err, "user_id", userID)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrNoActiveSalary
	}
	return FromDataModel(dm), nil
}

// CreateSalary stores a new salary record. The first salary a user
// creates becomes active immediately; later ones start inactive.
func (s *Service) CreateSalary(userID int64, dto CreateSalaryDTO) (*Salary, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("salary validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to check existing salaries", "error", err, "user_id", userID)
		return nil, err
	}

	sal := NewSalary(dto)
	sal.IsActive = len(existing) == 0

	dm := ToDataModel(sal, userID)
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create salary", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("salary created", "salary_id", dm.ID, "user_id", userID, "is_active", dm.IsActive)
	return FromDataModel(dm), nil
}

func (s *Service) UpdateSalary(id, userID int64, dto UpdateSalaryDTO) (*Salary, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get salary", "error", err, "salary_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrSalaryNotFound
	}

	if dto.Amount != nil {
		dm.Amount = *dto.Amount
	}
	if dto.Description != nil {
		dm.Description = *dto.Description
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update salary", "error", err, "salary_id", id)
		return nil, err
	}

	s.logger.Info("salary updated", "salary_id", id, "user_id", userID)
	return FromDataModel(dm), nil
}

// ActivateSalary makes the given salary the active one. Any other
// active salary for the user is deactivated in the same transaction.
func (s *Service) ActivateSalary(id, userID int64) (*Salary, error) {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get salary", "error", err, "salary_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrSalaryNotFound
	}

	if err := s.repo.Activate(id, userID); err != nil {
		s.logger.Error("failed to activate salary", "error", err, "salary_id", id)
		return nil, err
	}

	dm.IsActive = true
	s.logger.Info("salary activated", "salary_id", id, "user_id", userID)
	return FromDataModel(dm), nil
}

func (s *Service) DeleteSalary(id, userID int64) error {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get salary", "error", err, "salary_id", id)
		return err
	}
	if dm == nil {
		return internal.ErrSalaryNotFound
	}

	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete salary", "error", err, "salary_id", id)
		return err
	}

	s.logger.Info("salary deleted", "salary_id", id, "user_id", userID)
	return nil
}
