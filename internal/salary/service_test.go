package salary_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/moneywatch/moneywatch/internal"
	salaryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/salary"
	"github.com/moneywatch/moneywatch/internal/salary"
)

func TestSalary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Salary Service Suite")
}

// Mock repository for testing
type mockSalaryRepository struct {
	salaries    map[int64]*salaryDatamodel.Salary
	getError    error
	createError error
	nextID      int64
}

func newMockSalaryRepository() *mockSalaryRepository {
	return &mockSalaryRepository{
		salaries: make(map[int64]*salaryDatamodel.Salary),
		nextID:   1,
	}
}

func (m *mockSalaryRepository) GetAll(userID int64) ([]*salaryDatamodel.Salary, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*salaryDatamodel.Salary
	for _, s := range m.salaries {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSalaryRepository) GetByID(id, userID int64) (*salaryDatamodel.Salary, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	s, ok := m.salaries[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return s, nil
}

func (m *mockSalaryRepository) GetActive(userID int64) (*salaryDatamodel.Salary, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, s := range m.salaries {
		if s.UserID == userID && s.IsActive {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSalaryRepository) Create(s *salaryDatamodel.Salary) error {
	if m.createError != nil {
		return m.createError
	}
	s.ID = m.nextID
	m.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	m.salaries[s.ID] = s
	return nil
}

func (m *mockSalaryRepository) Update(s *salaryDatamodel.Salary) error {
	s.UpdatedAt = time.Now()
	m.salaries[s.ID] = s
	return nil
}

func (m *mockSalaryRepository) Activate(id, userID int64) error {
	for _, s := range m.salaries {
		if s.UserID == userID {
			s.IsActive = s.ID == id
		}
	}
	return nil
}

func (m *mockSalaryRepository) Delete(id, userID int64) error {
	delete(m.salaries, id)
	return nil
}

var _ = Describe("SalaryService", func() {
	var (
		service  *salary.Service
		mockRepo *mockSalaryRepository
		logger   *slog.Logger
		userID   int64
	)

	BeforeEach(func() {
		mockRepo = newMockSalaryRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = salary.NewService(mockRepo, logger)
		userID = int64(7)
	})

	Describe("CreateSalary", func() {
		It("should activate the first salary automatically", func() {
			// When
			sal, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(5000),
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(sal.IsActive).To(BeTrue())
		})

		It("should leave later salaries inactive", func() {
			// Given
			_, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(5000),
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			second, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(6000),
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(second.IsActive).To(BeFalse())
		})

		It("should reject a negative amount", func() {
			// When
			_, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(-100),
			})

			// Then
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ActivateSalary", func() {
		It("should deactivate the previously active salary", func() {
			// Given
			first, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(5000),
			})
			Expect(err).ToNot(HaveOccurred())
			second, err := service.CreateSalary(userID, salary.CreateSalaryDTO{
				Amount: decimal.NewFromInt(6000),
			})
			Expect(err).ToNot(HaveOccurred())

			// When
			activated, err := service.ActivateSalary(second.ID, userID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(activated.IsActive).To(BeTrue())

			active, err := service.GetActiveSalary(userID)
			Expect(err).ToNot(HaveOccurred())
			Expect(active.ID).To(Equal(second.ID))

			stale, err := mockRepo.GetByID(first.ID, userID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stale.IsActive).To(BeFalse())
		})

		It("should return not found for an unknown salary", func() {
			// When
			_, err := service.ActivateSalary(999, userID)

			// Then
			Expect(err).To(Equal(internal.ErrSalaryNotFound))
		})
	})

	Describe("GetActiveSalary", func() {
		It("should return ErrNoActiveSalary when none is set", func() {
			// When
			_, err := service.GetActiveSalary(userID)

			// Then
			Expect(err).To(Equal(internal.ErrNoActiveSalary))
		})
	})

	Describe("DeleteSalary", func() {
		It("should return not found for an unknown salary", func() {
			// When
			err := service.DeleteSalary(999, userID)

			// Then
			Expect(err).To(Equal(internal.ErrSalaryNotFound))
		})
	})
})
