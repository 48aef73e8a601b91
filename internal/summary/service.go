package summary

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/moneywatch/moneywatch/internal"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/expense"
	"github.com/moneywatch/moneywatch/internal/salary"
)

// SalarySource is the slice of the salary service the summary needs.
type SalarySource interface {
	GetActiveSalary(userID int64) (*salary.Salary, error)
}

// ExpenseSource provides the period's expenses to total up.
type ExpenseSource interface {
	ListByPeriod(userID int64, month period.Month) ([]*expense.Expense, error)
}

type Service struct {
	salaries SalarySource
	expenses ExpenseSource
	logger   *slog.Logger
}

func NewService(salaries SalarySource, expenses ExpenseSource, logger *slog.Logger) *Service {
	return &Service{
		salaries: salaries,
		expenses: expenses,
		logger:   logger,
	}
}

// GetBreakdown computes the month's summary against the active salary.
// A user without an active salary gets a zero salary breakdown instead
// of an error, so the dashboard still renders.
func (s *Service) GetBreakdown(userID int64, month period.Month) (Breakdown, error) {
	salaryAmount := decimal.Zero
	active, err := s.salaries.GetActiveSalary(userID)
	if err != nil && !errors.Is(err, internal.ErrNoActiveSalary) {
		s.logger.Error("failed to get active salary", "error", err, "user_id", userID)
		return Breakdown{}, err
	}
	if active != nil {
		salaryAmount = active.Amount
	}

	expenses, err := s.expenses.ListByPeriod(userID, month)
	if err != nil {
		s.logger.Error("failed to get period expenses", "error", err, "period", month.String())
		return Breakdown{}, err
	}

	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}

	return Calculate(salaryAmount, total), nil
}
