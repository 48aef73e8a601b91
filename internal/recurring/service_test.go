package recurring_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/moneywatch/moneywatch/internal"
	expenseDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/expense"
	recurringDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/recurring"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/recurring"
)

func TestRecurring(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Recurring Service Suite")
}

// Mock repository for testing
type mockRecurringRepository struct {
	templates   map[int64]*recurringDatamodel.RecurringExpense
	getError    error
	createError error
	updateError error
	deleteError error
	nextID      int64
}

func newMockRecurringRepository() *mockRecurringRepository {
	return &mockRecurringRepository{
		templates: make(map[int64]*recurringDatamodel.RecurringExpense),
		nextID:    1,
	}
}

func (m *mockRecurringRepository) GetAll(userID int64) ([]*recurringDatamodel.RecurringExpense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*recurringDatamodel.RecurringExpense
	for _, tpl := range m.templates {
		if tpl.UserID == userID {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *mockRecurringRepository) GetActive(userID int64) ([]*recurringDatamodel.RecurringExpense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*recurringDatamodel.RecurringExpense
	for _, tpl := range m.templates {
		if tpl.UserID == userID && tpl.IsActive {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (m *mockRecurringRepository) GetByID(id, userID int64) (*recurringDatamodel.RecurringExpense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	tpl, ok := m.templates[id]
	if !ok || tpl.UserID != userID {
		return nil, nil
	}
	return tpl, nil
}

func (m *mockRecurringRepository) Create(tpl *recurringDatamodel.RecurringExpense) error {
	if m.createError != nil {
		return m.createError
	}
	tpl.ID = m.nextID
	m.nextID++
	tpl.CreatedAt = time.Now()
	tpl.UpdatedAt = time.Now()
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *mockRecurringRepository) Update(tpl *recurringDatamodel.RecurringExpense) error {
	if m.updateError != nil {
		return m.updateError
	}
	tpl.UpdatedAt = time.Now()
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *mockRecurringRepository) Delete(id, userID int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.templates, id)
	return nil
}

// Mock expense store for generation tests
type mockExpenseStore struct {
	expenses       []*expenseDatamodel.Expense
	getError       error
	createAllError error
	nextID         int64
}

func newMockExpenseStore() *mockExpenseStore {
	return &mockExpenseStore{nextID: 1}
}

func (m *mockExpenseStore) GetByPeriod(userID int64, month period.Month) ([]*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*expenseDatamodel.Expense
	for _, exp := range m.expenses {
		if exp.UserID == userID && exp.Period.Equal(month) {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (m *mockExpenseStore) CreateAll(expenses []*expenseDatamodel.Expense) error {
	if m.createAllError != nil {
		// All or nothing: a failed batch inserts no rows.
		return m.createAllError
	}
	for _, exp := range expenses {
		exp.ID = m.nextID
		m.nextID++
	}
	m.expenses = append(m.expenses, expenses...)
	return nil
}

var _ = Describe("RecurringService", func() {
	var (
		service  *recurring.Service
		mockRepo *mockRecurringRepository
		mockExp  *mockExpenseStore
		logger   *slog.Logger
		userID   int64
	)

	BeforeEach(func() {
		mockRepo = newMockRecurringRepository()
		mockExp = newMockExpenseStore()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = recurring.NewService(mockRepo, mockExp, logger)
		userID = int64(42)
	})

	createTemplate := func(name string, amount string, dueDay int) *recurring.RecurringExpense {
		tpl, err := service.CreateTemplate(userID, recurring.CreateRecurringExpenseDTO{
			Name:          name,
			Amount:        decimal.RequireFromString(amount),
			DueDayOfMonth: dueDay,
		})
		Expect(err).ToNot(HaveOccurred())
		return tpl
	}

	Describe("CreateTemplate", func() {
		It("should create an active template", func() {
			// When
			tpl := createTemplate("Rent", "1200", 1)

			// Then
			Expect(tpl.ID).To(BeNumerically(">", 0))
			Expect(tpl.Name).To(Equal("Rent"))
			Expect(tpl.IsActive).To(BeTrue())
			Expect(tpl.DueDayOfMonth).To(Equal(1))
		})

		It("should reject a due day below 1", func() {
			// When
			_, err := service.CreateTemplate(userID, recurring.CreateRecurringExpenseDTO{
				Name:          "Rent",
				Amount:        decimal.NewFromInt(1200),
				DueDayOfMonth: 0,
			})

			// Then
			Expect(err).To(HaveOccurred())
			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
		})

		It("should reject a due day above 31", func() {
			// When
			_, err := service.CreateTemplate(userID, recurring.CreateRecurringExpenseDTO{
				Name:          "Rent",
				Amount:        decimal.NewFromInt(1200),
				DueDayOfMonth: 32,
			})

			// Then
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ToggleActive", func() {
		It("should flip the active flag", func() {
			// Given
			tpl := createTemplate("Gym", "35", 5)

			// When
			toggled, err := service.ToggleActive(tpl.ID, userID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(toggled.IsActive).To(BeFalse())

			toggled, err = service.ToggleActive(tpl.ID, userID)
			Expect(err).ToNot(HaveOccurred())
			Expect(toggled.IsActive).To(BeTrue())
		})

		It("should return not found for an unknown template", func() {
			// When
			_, err := service.ToggleActive(999, userID)

			// Then
			Expect(err).To(Equal(internal.ErrRecurringNotFound))
		})
	})

	Describe("GenerateForPeriod", func() {
		var month period.Month

		BeforeEach(func() {
			var err error
			month, err = period.ParseMonth("2025-03")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should stamp one expense per active template", func() {
			// Given
			rent := createTemplate("Rent", "1200", 1)
			gym := createTemplate("Gym", "35", 15)

			// When
			count, err := service.GenerateForPeriod(userID, month)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(2))

			expenses, err := mockExp.GetByPeriod(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(expenses).To(HaveLen(2))

			byTemplate := make(map[int64]*expenseDatamodel.Expense)
			for _, exp := range expenses {
				Expect(exp.RecurringID).ToNot(BeNil())
				byTemplate[*exp.RecurringID] = exp
			}
			Expect(byTemplate).To(HaveKey(rent.ID))
			Expect(byTemplate).To(HaveKey(gym.ID))
			Expect(byTemplate[rent.ID].Amount.Equal(decimal.NewFromInt(1200))).To(BeTrue())
			Expect(byTemplate[rent.ID].Paid).To(BeFalse())
		})

		It("should generate nothing on a second call for the same period", func() {
			// Given
			createTemplate("Rent", "1200", 1)
			count, err := service.GenerateForPeriod(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))

			// When
			count, err = service.GenerateForPeriod(userID, month)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(0))

			expenses, _ := mockExp.GetByPeriod(userID, month)
			Expect(expenses).To(HaveLen(1))
		})

		It("should only stamp templates missing from the period", func() {
			// Given
			createTemplate("Rent", "1200", 1)
			count, err := service.GenerateForPeriod(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))

			createTemplate("Gym", "35", 15)

			// When
			count, err = service.GenerateForPeriod(userID, month)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))

			expenses, _ := mockExp.GetByPeriod(userID, month)
			Expect(expenses).To(HaveLen(2))
		})

		It("should skip inactive templates", func() {
			// Given
			tpl := createTemplate("Rent", "1200", 1)
			_, err := service.ToggleActive(tpl.ID, userID)
			Expect(err).ToNot(HaveOccurred())

			// When
			count, err := service.GenerateForPeriod(userID, month)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(0))
		})

		It("should not retract already generated expenses when a template is deactivated", func() {
			// Given
			tpl := createTemplate("Rent", "1200", 1)
			_, err := service.GenerateForPeriod(userID, month)
			Expect(err).ToNot(HaveOccurred())

			// When
			_, err = service.ToggleActive(tpl.ID, userID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			expenses, _ := mockExp.GetByPeriod(userID, month)
			Expect(expenses).To(HaveLen(1))
		})

		It("should clamp day 31 to the last day of February", func() {
			// Given
			createTemplate("Insurance", "80", 31)
			feb, err := period.ParseMonth("2025-02")
			Expect(err).ToNot(HaveOccurred())

			// When
			count, err := service.GenerateForPeriod(userID, feb)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))

			expenses, _ := mockExp.GetByPeriod(userID, feb)
			Expect(expenses).To(HaveLen(1))
			Expect(expenses[0].DueDate).ToNot(BeNil())
			Expect(expenses[0].DueDate.Day()).To(Equal(28))
			Expect(expenses[0].DueDate.Month()).To(Equal(time.February))
		})

		It("should clamp day 31 to February 29 in a leap year", func() {
			// Given
			createTemplate("Insurance", "80", 31)
			feb, err := period.ParseMonth("2024-02")
			Expect(err).ToNot(HaveOccurred())

			// When
			count, err := service.GenerateForPeriod(userID, feb)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(1))

			expenses, _ := mockExp.GetByPeriod(userID, feb)
			Expect(expenses[0].DueDate.Day()).To(Equal(29))
		})

		It("should insert nothing when the batch fails", func() {
			// Given
			createTemplate("Rent", "1200", 1)
			createTemplate("Gym", "35", 15)
			mockExp.createAllError = errors.New("connection lost")

			// When
			count, err := service.GenerateForPeriod(userID, month)

			// Then
			Expect(err).To(HaveOccurred())
			Expect(count).To(Equal(0))

			expenses, _ := mockExp.GetByPeriod(userID, month)
			Expect(expenses).To(BeEmpty())
		})
	})
})
