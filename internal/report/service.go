package report

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/expense"
)

// ExpenseSource is the slice of the expense service the reports need.
type ExpenseSource interface {
	ListByPeriod(userID int64, month period.Month) ([]*expense.Expense, error)
	YearsWithData(userID int64) ([]int, error)
}

type Service struct {
	expenses ExpenseSource
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(expenses ExpenseSource, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		logger:   logger,
		now:      time.Now,
	}
}

// CategoryDistribution groups a period's expenses by category name and
// sums each group. Slices keep the order categories first appear in the
// expense list; colors cycle through a fixed palette in that order.
func (s *Service) CategoryDistribution(userID int64, month period.Month) ([]CategorySlice, error) {
	expenses, err := s.expenses.ListByPeriod(userID, month)
	if err != nil {
		s.logger.Error("failed to get period expenses", "error", err, "period", month.String())
		return nil, err
	}

	index := make(map[string]int)
	slices := make([]CategorySlice, 0)
	for _, exp := range expenses {
		name := exp.CategoryName(UncategorizedLabel)
		i, seen := index[name]
		if !seen {
			i = len(slices)
			index[name] = i
			slices = append(slices, CategorySlice{
				Name:   name,
				Amount: decimal.Zero,
				Color:  paletteColor(i),
			})
		}
		slices[i].Amount = slices[i].Amount.Add(exp.Amount)
	}

	return slices, nil
}

// MonthlyTrend returns the year's twelve per-month totals in calendar
// order. The months are fetched concurrently; a month whose fetch fails
// degrades to zero instead of failing the whole trend.
func (s *Service) MonthlyTrend(ctx context.Context, userID int64, year int) []MonthTotal {
	totals := s.fanOutMonths(ctx, userID, year, func(month period.Month, expenses []*expense.Expense) decimal.Decimal {
		total := decimal.Zero
		for _, exp := range expenses {
			total = total.Add(exp.Amount)
		}
		return total
	})

	trend := make([]MonthTotal, 12)
	for i := 0; i < 12; i++ {
		trend[i] = MonthTotal{
			Month: time.Month(i + 1).String()[:3],
			Total: totals[i],
		}
	}
	return trend
}

// YearlyCategoryTotals accumulates the year's expenses by category name
// and returns the groups sorted by amount, largest first. Failed months
// contribute nothing, matching the trend's degradation.
func (s *Service) YearlyCategoryTotals(ctx context.Context, userID int64, year int) []CategorySlice {
	type monthGroups map[string]decimal.Decimal

	var groups [12]monthGroups
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < 12; i++ {
		i := i
		g.Go(func() error {
			month := period.NewMonth(year, time.Month(i+1))
			expenses, err := s.expenses.ListByPeriod(userID, month)
			if err != nil {
				s.logger.Warn("skipping month in yearly totals", "error", err, "period", month.String())
				return nil
			}
			mg := make(monthGroups)
			for _, exp := range expenses {
				name := exp.CategoryName(UncategorizedLabel)
				mg[name] = mg[name].Add(exp.Amount)
			}
			groups[i] = mg
			return nil
		})
	}
	_ = g.Wait()

	totals := make(map[string]decimal.Decimal)
	for _, mg := range groups {
		for name, amount := range mg {
			totals[name] = totals[name].Add(amount)
		}
	}

	slices := make([]CategorySlice, 0, len(totals))
	for name, amount := range totals {
		slices = append(slices, CategorySlice{Name: name, Amount: amount})
	}
	sort.Slice(slices, func(a, b int) bool {
		if !slices[a].Amount.Equal(slices[b].Amount) {
			return slices[a].Amount.GreaterThan(slices[b].Amount)
		}
		return slices[a].Name < slices[b].Name
	})
	for i := range slices {
		slices[i].Color = paletteColor(i)
	}
	return slices
}

// Years lists the distinct years that have expense data, newest first.
// The current year is always present so the year picker never renders
// empty, and a store failure degrades to exactly the current year.
func (s *Service) Years(userID int64) []int {
	currentYear := s.now().Year()

	years, err := s.expenses.YearsWithData(userID)
	if err != nil {
		s.logger.Error("failed to get years with data", "error", err, "user_id", userID)
		return []int{currentYear}
	}

	seen := map[int]bool{currentYear: true}
	out := []int{currentYear}
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// fanOutMonths fetches all twelve months of a year concurrently and
// reduces each month's expenses with fold. Results are tagged by month
// index, so assembly order never depends on completion order. A failed
// month yields fold's zero value.
func (s *Service) fanOutMonths(ctx context.Context, userID int64, year int, fold func(period.Month, []*expense.Expense) decimal.Decimal) [12]decimal.Decimal {
	var results [12]decimal.Decimal
	for i := range results {
		results[i] = decimal.Zero
	}

	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < 12; i++ {
		i := i
		g.Go(func() error {
			month := period.NewMonth(year, time.Month(i+1))
			expenses, err := s.expenses.ListByPeriod(userID, month)
			if err != nil {
				s.logger.Warn("skipping month in trend", "error", err, "period", month.String())
				return nil
			}
			results[i] = fold(month, expenses)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
