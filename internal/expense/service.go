package expense

import (
	"log/slog"

	"github.com/moneywatch/moneywatch/internal"
	expenseDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/expense"
	"github.com/moneywatch/moneywatch/internal/core/period"
)

// RepositoryAPI defines the data access methods for expenses
type RepositoryAPI interface {
	GetByPeriod(userID int64, month period.Month) ([]*expenseDatamodel.Expense, error)
	GetByID(id, userID int64) (*expenseDatamodel.Expense, error)
	GetRecent(userID int64, limit int) ([]*expenseDatamodel.Expense, error)
	Create(expense *expenseDatamodel.Expense) error
	CreateAll(expenses []*expenseDatamodel.Expense) error
	Update(expense *expenseDatamodel.Expense) error
	Delete(id, userID int64) error
	DistinctYears(userID int64) ([]int, error)
}

// Service handles expense business logic
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

// ListByPeriod returns all expenses owned by the given month.
func (s *Service) ListByPeriod(userID int64, month period.Month) ([]*Expense, error) {
	data, err := s.repo.GetByPeriod(userID, month)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID, "period", month.String())
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

// ListRecent returns the most recently created expenses for the dashboard.
func (s *Service) ListRecent(userID int64, limit int) ([]*Expense, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	data, err := s.repo.GetRecent(userID, limit)
	if err != nil {
		s.logger.Error("failed to list recent expenses", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

func (s *Service) CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exp := NewExpense(userID, dto)
	dm := ToDataModel(exp, userID)
	dm.CategoryID = dto.CategoryID

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, err
	}

	created, err := s.repo.GetByID(dm.ID, userID)
	if err != nil {
		s.logger.Error("failed to reload created expense", "error", err, "expense_id", dm.ID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", created.ID,
		"user_id", userID,
		"period", created.Period.String(),
		"amount", created.Amount.String())

	return FromDataModel(created), nil
}

// UpdateExpense edits name/description/amount/bank/category. The owning
// period never changes here, whatever the caller sends.
func (s *Service) UpdateExpense(id, userID int64, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrExpenseNotFound
	}

	if dto.Name != nil {
		dm.Name = *dto.Name
	}
	if dto.Description != nil {
		dm.Description = *dto.Description
	}
	if dto.Amount != nil {
		dm.Amount = *dto.Amount
	}
	if dto.Bank != nil {
		dm.Bank = *dto.Bank
	}
	if dto.CategoryID != nil {
		dm.CategoryID = dto.CategoryID
		dm.Category = nil
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, err
	}

	updated, err := s.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", userID)
	return FromDataModel(updated), nil
}

// SetPaidStatus flips the paid flag of an expense.
func (s *Service) SetPaidStatus(id, userID int64, paid bool) (*Expense, error) {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrExpenseNotFound
	}

	dm.Paid = paid
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update paid status", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense paid status updated", "expense_id", id, "paid", paid)
	return FromDataModel(dm), nil
}

func (s *Service) DeleteExpense(id, userID int64) error {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return err
	}
	if dm == nil {
		return internal.ErrExpenseNotFound
	}

	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}

// YearsWithData returns the distinct calendar years that have at least one
// expense, unordered. Callers layer their own display policy on top.
func (s *Service) YearsWithData(userID int64) ([]int, error) {
	years, err := s.repo.DistinctYears(userID)
	if err != nil {
		s.logger.Error("failed to query distinct years", "error", err, "user_id", userID)
		return nil, err
	}
	return years, nil
}
