package recurring

import (
	"log/slog"

	"github.com/moneywatch/moneywatch/internal"
	expenseDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/expense"
	recurringDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/recurring"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/expense"
)

// RepositoryAPI defines the data access methods for recurring templates
type RepositoryAPI interface {
	GetAll(userID int64) ([]*recurringDatamodel.RecurringExpense, error)
	GetActive(userID int64) ([]*recurringDatamodel.RecurringExpense, error)
	GetByID(id, userID int64) (*recurringDatamodel.RecurringExpense, error)
	Create(template *recurringDatamodel.RecurringExpense) error
	Update(template *recurringDatamodel.RecurringExpense) error
	Delete(id, userID int64) error
}

// ExpenseStore is the slice of the expense repository the generator needs:
// the period's existing expenses for the idempotency check and a
// transactional batch insert.
type ExpenseStore interface {
	GetByPeriod(userID int64, month period.Month) ([]*expenseDatamodel.Expense, error)
	CreateAll(expenses []*expenseDatamodel.Expense) error
}

// Service handles template CRUD and per-period generation
type Service struct {
	repo     RepositoryAPI
	expenses ExpenseStore
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, expenses ExpenseStore, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		logger:   logger,
	}
}

func (s *Service) ListTemplates(userID int64) ([]*RecurringExpense, error) {
	data, err := s.repo.GetAll(userID)
	if err != nil {
		s.logger.Error("failed to list recurring templates", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(data), nil
}

func (s *Service) CreateTemplate(userID int64, dto CreateRecurringExpenseDTO) (*RecurringExpense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("recurring template validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	tpl := NewRecurringExpense(dto)
	dm := ToDataModel(tpl, userID)
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create recurring template", "error", err, "user_id", userID)
		return nil, err
	}

	tpl.ID = dm.ID
	s.logger.Info("recurring template created",
		"recurring_id", tpl.ID,
		"user_id", userID,
		"due_day", tpl.DueDayOfMonth)
	return tpl, nil
}

func (s *Service) UpdateTemplate(id, userID int64, dto UpdateRecurringExpenseDTO) (*RecurringExpense, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get recurring template", "error", err, "recurring_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrRecurringNotFound
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
	if dto.CategoryID != nil {
		dm.CategoryID = dto.CategoryID
	}
	if dto.DueDayOfMonth != nil {
		dm.DueDayOfMonth = *dto.DueDayOfMonth
	}
	if dto.IsActive != nil {
		dm.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update recurring template", "error", err, "recurring_id", id)
		return nil, err
	}

	s.logger.Info("recurring template updated", "recurring_id", id, "user_id", userID)
	return FromDataModel(dm), nil
}

// ToggleActive flips the active flag. Deactivation stops future generation
// but never retracts expenses that were already generated.
func (s *Service) ToggleActive(id, userID int64) (*RecurringExpense, error) {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get recurring template", "error", err, "recurring_id", id)
		return nil, err
	}
	if dm == nil {
		return nil, internal.ErrRecurringNotFound
	}

	dm.IsActive = !dm.IsActive
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to toggle recurring template", "error", err, "recurring_id", id)
		return nil, err
	}

	s.logger.Info("recurring template toggled", "recurring_id", id, "is_active", dm.IsActive)
	return FromDataModel(dm), nil
}

func (s *Service) DeleteTemplate(id, userID int64) error {
	dm, err := s.repo.GetByID(id, userID)
	if err != nil {
		s.logger.Error("failed to get recurring template", "error", err, "recurring_id", id)
		return err
	}
	if dm == nil {
		return internal.ErrRecurringNotFound
	}

	if err := s.repo.Delete(id, userID); err != nil {
		s.logger.Error("failed to delete recurring template", "error", err, "recurring_id", id)
		return err
	}

	s.logger.Info("recurring template deleted", "recurring_id", id, "user_id", userID)
	return nil
}

// GenerateForPeriod materializes one expense per active template that is not
// already present in the period. The idempotency key is the
// (template id, period) pair, so calling this twice creates nothing new.
// All inserts go through one transactional batch: either every missing
// template is stamped or none is.
func (s *Service) GenerateForPeriod(userID int64, month period.Month) (int, error) {
	templates, err := s.repo.GetActive(userID)
	if err != nil {
		s.logger.Error("failed to load active templates", "error", err, "user_id", userID)
		return 0, err
	}
	if len(templates) == 0 {
		return 0, nil
	}

	existing, err := s.expenses.GetByPeriod(userID, month)
	if err != nil {
		s.logger.Error("failed to load period expenses", "error", err, "period", month.String())
		return 0, err
	}

	generated := make(map[int64]bool)
	for _, exp := range existing {
		if exp.RecurringID != nil {
			generated[*exp.RecurringID] = true
		}
	}

	var batch []*expenseDatamodel.Expense
	for _, tpl := range templates {
		if generated[tpl.ID] {
			continue
		}
		batch = append(batch, s.stamp(tpl, userID, month))
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.expenses.CreateAll(batch); err != nil {
		s.logger.Error("failed to generate recurring expenses",
			"error", err,
			"period", month.String(),
			"count", len(batch))
		return 0, err
	}

	s.logger.Info("recurring expenses generated",
		"user_id", userID,
		"period", month.String(),
		"count", len(batch))
	return len(batch), nil
}

// stamp copies the template's fields into a concrete expense for the month.
// The due date clamps to the month's last day when the template's due day
// does not exist in it (day 31 in February lands on Feb 28/29).
func (s *Service) stamp(tpl *recurringDatamodel.RecurringExpense, userID int64, month period.Month) *expenseDatamodel.Expense {
	recurringID := tpl.ID
	dueDate := month.ClampDay(tpl.DueDayOfMonth)

	return &expenseDatamodel.Expense{
		UserID:      userID,
		Name:        tpl.Name,
		Description: tpl.Description,
		Amount:      tpl.Amount,
		Period:      month,
		Bank:        expense.DefaultBank,
		CategoryID:  tpl.CategoryID,
		RecurringID: &recurringID,
		DueDate:     &dueDate,
		Paid:        false,
	}
}
