package category_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/moneywatch/moneywatch/internal"
	"github.com/moneywatch/moneywatch/internal/category"
	categoryDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// Mock repository for testing
type mockCategoryRepository struct {
	categories  map[int64]*categoryDatamodel.Category
	getError    error
	createError error
	nextID      int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) GetAll(userID int64) ([]*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*categoryDatamodel.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCategoryRepository) GetByID(id, userID int64) (*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	c, ok := m.categories[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (m *mockCategoryRepository) Create(c *categoryDatamodel.Category) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) Deactivate(id, userID int64) error {
	if c, ok := m.categories[id]; ok && c.UserID == userID {
		c.IsActive = false
	}
	return nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
		logger   *slog.Logger
		userID   int64
	)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
		userID = int64(42)
	})

	Describe("CreateCategory", func() {
		It("should create an active category", func() {
			// When
			cat, err := service.CreateCategory(userID, category.CreateCategoryDTO{
				Name:  "Food",
				Color: "#8b5cf6",
			})

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(cat.ID).To(BeNumerically(">", 0))
			Expect(cat.IsActive).To(BeTrue())
			Expect(cat.Color).To(Equal("#8b5cf6"))
		})

		It("should reject a missing name", func() {
			// When
			_, err := service.CreateCategory(userID, category.CreateCategoryDTO{})

			// Then
			Expect(err).To(HaveOccurred())
		})

		It("should reject a malformed color", func() {
			// When
			_, err := service.CreateCategory(userID, category.CreateCategoryDTO{
				Name:  "Food",
				Color: "purple",
			})

			// Then
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetAllCategories", func() {
		It("should omit deactivated categories", func() {
			// Given
			food, err := service.CreateCategory(userID, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).ToNot(HaveOccurred())
			_, err = service.CreateCategory(userID, category.CreateCategoryDTO{Name: "Transport"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteCategory(food.ID, userID)).To(Succeed())

			// When
			categories, err := service.GetAllCategories(userID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("Transport"))
		})
	})

	Describe("DeleteCategory", func() {
		It("should soft-delete instead of removing the row", func() {
			// Given
			food, err := service.CreateCategory(userID, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).ToNot(HaveOccurred())

			// When
			err = service.DeleteCategory(food.ID, userID)

			// Then
			Expect(err).ToNot(HaveOccurred())
			stored, err := mockRepo.GetByID(food.ID, userID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).ToNot(BeNil())
			Expect(stored.IsActive).To(BeFalse())
		})

		It("should return not found for an unknown category", func() {
			// When
			err := service.DeleteCategory(999, userID)

			// Then
			Expect(err).To(Equal(internal.ErrCategoryNotFound))
		})

		It("should not let one user delete another's category", func() {
			// Given
			food, err := service.CreateCategory(userID, category.CreateCategoryDTO{Name: "Food"})
			Expect(err).ToNot(HaveOccurred())

			// When
			err = service.DeleteCategory(food.ID, userID+1)

			// Then
			Expect(err).To(Equal(internal.ErrCategoryNotFound))
		})
	})
})
