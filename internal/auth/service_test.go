package auth

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/moneywatch/moneywatch/internal"
	userDatamodel "github.com/moneywatch/moneywatch/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockUserRepository struct {
	users       map[string]*userDatamodel.User
	getError    error
	createError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[string]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.users[email], nil
}

func (m *mockUserRepository) Create(user *userDatamodel.User) error {
	if m.createError != nil {
		return m.createError
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) seed(email, password string, active bool) *userDatamodel.User {
	hash, _ := HashPassword(password, 4)
	user := &userDatamodel.User{
		ID:           m.nextID,
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		IsActive:     active,
	}
	m.nextID++
	m.users[email] = user
	return user
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(mockRepo, tokenGen, 4, logger)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				mockRepo.seed("demo@mail.com", "password123", true)

				tokens, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "password123"})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should issue tokens that carry the user's identity", func() {
				seeded := mockRepo.seed("demo@mail.com", "password123", true)

				tokens, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "password123"})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := tokenGen.ValidateToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(seeded.ID))
				gomega.Expect(claims.Email).To(gomega.Equal("demo@mail.com"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject a wrong password", func() {
				mockRepo.seed("demo@mail.com", "password123", true)

				_, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "wrong"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown email", func() {
				_, err := service.Authenticate(LoginDTO{Email: "nobody@mail.com", Password: "password123"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject a deactivated account", func() {
				mockRepo.seed("demo@mail.com", "password123", false)

				_, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "password123"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should not leak repository errors", func() {
				mockRepo.getError = errors.New("connection lost")

				_, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "password123"})

				gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
			})
		})
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should create the account and return tokens", func() {
			tokens, err := service.Register(RegisterDTO{
				Email:    "new@mail.com",
				Name:     "New User",
				Password: "password123",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())

			stored, err := mockRepo.GetByEmail("new@mail.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stored).ToNot(gomega.BeNil())
			gomega.Expect(stored.IsActive).To(gomega.BeTrue())
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("password123"))
		})

		ginkgo.It("should reject an already registered email", func() {
			mockRepo.seed("demo@mail.com", "password123", true)

			_, err := service.Register(RegisterDTO{
				Email:    "demo@mail.com",
				Name:     "Someone Else",
				Password: "password123",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrEmailTaken))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.Register(RegisterDTO{
				Email:    "new@mail.com",
				Name:     "New User",
				Password: "short",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a fresh pair for a valid refresh token", func() {
			mockRepo.seed("demo@mail.com", "password123", true)
			tokens, err := service.Authenticate(LoginDTO{Email: "demo@mail.com", Password: "password123"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject garbage tokens", func() {
			_, err := service.RefreshTokens("not-a-token")

			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should map expired tokens to ErrTokenExpired", func() {
			expiredGen := NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
			token, err := expiredGen.GenerateAccessToken(1, "demo@mail.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
		})
	})
})
