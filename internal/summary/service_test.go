package summary_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/moneywatch/moneywatch/internal"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/expense"
	"github.com/moneywatch/moneywatch/internal/salary"
	"github.com/moneywatch/moneywatch/internal/summary"
)

func TestSummary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Service Suite")
}

type mockSalarySource struct {
	active *salary.Salary
	err    error
}

func (m *mockSalarySource) GetActiveSalary(userID int64) (*salary.Salary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.active, nil
}

type mockExpenseSource struct {
	expenses []*expense.Expense
	err      error
}

func (m *mockExpenseSource) ListByPeriod(userID int64, month period.Month) ([]*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.expenses, nil
}

func expenseOf(amount string) *expense.Expense {
	return &expense.Expense{Amount: decimal.RequireFromString(amount)}
}

var _ = Describe("SummaryCalculation", func() {
	Describe("Calculate", func() {
		It("should subtract the total from the salary", func() {
			b := summary.Calculate(decimal.NewFromInt(5000), decimal.NewFromInt(2600))

			Expect(b.Remaining.Equal(decimal.NewFromInt(2400))).To(BeTrue())
			Expect(b.PercentUsed).To(BeNumerically("~", 52.0, 0.001))
			Expect(b.RatioValid).To(BeTrue())
			Expect(b.Severity).To(Equal(summary.SeverityNormal))
		})

		It("should allow remaining to go negative", func() {
			b := summary.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(1500))

			Expect(b.Remaining.Equal(decimal.NewFromInt(-500))).To(BeTrue())
			Expect(b.Ratio).To(BeNumerically("~", 150.0, 0.001))
			Expect(b.PercentUsed).To(Equal(100.0))
			Expect(b.Severity).To(Equal(summary.SeverityCritical))
		})

		It("should classify 95 percent as critical", func() {
			b := summary.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(950))

			Expect(b.PercentUsed).To(BeNumerically("~", 95.0, 0.001))
			Expect(b.Severity).To(Equal(summary.SeverityCritical))
		})

		It("should classify 75 percent as warning", func() {
			b := summary.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(750))

			Expect(b.Severity).To(Equal(summary.SeverityWarning))
		})

		It("should treat the 70 percent boundary as normal", func() {
			b := summary.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(700))

			Expect(b.Severity).To(Equal(summary.SeverityNormal))
		})

		It("should treat the 90 percent boundary as warning", func() {
			b := summary.Calculate(decimal.NewFromInt(1000), decimal.NewFromInt(900))

			Expect(b.Severity).To(Equal(summary.SeverityWarning))
		})

		It("should flag a zero salary as having no valid ratio", func() {
			b := summary.Calculate(decimal.Zero, decimal.NewFromInt(300))

			Expect(b.RatioValid).To(BeFalse())
			Expect(b.PercentUsed).To(Equal(0.0))
			Expect(b.Severity).To(Equal(summary.SeverityNormal))
			Expect(b.Remaining.Equal(decimal.NewFromInt(-300))).To(BeTrue())
		})
	})
})

var _ = Describe("SummaryService", func() {
	var (
		service  *summary.Service
		salaries *mockSalarySource
		expenses *mockExpenseSource
		month    period.Month
	)

	BeforeEach(func() {
		salaries = &mockSalarySource{}
		expenses = &mockExpenseSource{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = summary.NewService(salaries, expenses, logger)

		var err error
		month, err = period.ParseMonth("2025-06")
		Expect(err).ToNot(HaveOccurred())
	})

	It("should total the period's expenses against the active salary", func() {
		// Given
		salaries.active = &salary.Salary{ID: 1, Amount: decimal.NewFromInt(5000), IsActive: true}
		expenses.expenses = []*expense.Expense{
			expenseOf("1200"), expenseOf("900"), expenseOf("500"),
		}

		// When
		b, err := service.GetBreakdown(7, month)

		// Then
		Expect(err).ToNot(HaveOccurred())
		Expect(b.Salary.Equal(decimal.NewFromInt(5000))).To(BeTrue())
		Expect(b.TotalExpenses.Equal(decimal.NewFromInt(2600))).To(BeTrue())
		Expect(b.Remaining.Equal(decimal.NewFromInt(2400))).To(BeTrue())
		Expect(b.Severity).To(Equal(summary.SeverityNormal))
	})

	It("should fall back to a zero salary when none is active", func() {
		// Given
		salaries.err = internal.ErrNoActiveSalary
		expenses.expenses = []*expense.Expense{expenseOf("300")}

		// When
		b, err := service.GetBreakdown(7, month)

		// Then
		Expect(err).ToNot(HaveOccurred())
		Expect(b.Salary.IsZero()).To(BeTrue())
		Expect(b.RatioValid).To(BeFalse())
	})

	It("should propagate expense store failures", func() {
		// Given
		salaries.active = &salary.Salary{ID: 1, Amount: decimal.NewFromInt(5000), IsActive: true}
		expenses.err = errors.New("connection lost")

		// When
		_, err := service.GetBreakdown(7, month)

		// Then
		Expect(err).To(HaveOccurred())
	})
})
