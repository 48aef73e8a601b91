package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/moneywatch/moneywatch/internal/auth"
	"github.com/moneywatch/moneywatch/internal/category"
	"github.com/moneywatch/moneywatch/internal/expense"
	"github.com/moneywatch/moneywatch/internal/recurring"
	"github.com/moneywatch/moneywatch/internal/report"
	"github.com/moneywatch/moneywatch/internal/salary"
	"github.com/moneywatch/moneywatch/internal/summary"
	"github.com/moneywatch/moneywatch/internal/transport/middleware"
	"github.com/moneywatch/moneywatch/internal/user"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Expense   *expense.Handler
	Category  *category.Handler
	Recurring *recurring.Handler
	Salary    *salary.Handler
	Summary   *summary.Handler
	Report    *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Get("/validate", h.Auth.Validate)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user
			pr.Get("/users/me", h.User.GetCurrentUser)

			// Expense routes
			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/recent", h.Expense.GetRecentExpenses)
				er.Get("/years", h.Report.GetYears)
				er.Get("/period/{period}", h.Expense.GetExpenses)
				er.Post("/period/{period}/generate", h.Expense.GenerateRecurring)
				er.Put("/{id}", h.Expense.UpdateExpense)
				er.Patch("/{id}/paid", h.Expense.UpdatePaidStatus)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})

			// Category routes
			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.GetCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
			})

			// Recurring expense routes
			pr.Route("/recurringExpenses", func(rr chi.Router) {
				rr.Get("/", h.Recurring.GetRecurringExpenses)
				rr.Post("/", h.Recurring.CreateRecurringExpense)
				rr.Put("/{id}", h.Recurring.UpdateRecurringExpense)
				rr.Patch("/{id}/toggle", h.Recurring.ToggleRecurringExpenseStatus)
				rr.Delete("/{id}", h.Recurring.DeleteRecurringExpense)
			})

			// Salary routes
			pr.Route("/salaries", func(sr chi.Router) {
				sr.Get("/", h.Salary.GetSalaries)
				sr.Post("/", h.Salary.CreateSalary)
				sr.Put("/{id}", h.Salary.UpdateSalary)
				sr.Patch("/{id}/activate", h.Salary.ActivateSalary)
				sr.Delete("/{id}", h.Salary.DeleteSalary)
			})

			// Summary route
			pr.Get("/summary/{period}", h.Summary.GetSummary)

			// Report routes
			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/distribution/{period}", h.Report.GetCategoryDistribution)
				rr.Get("/trend/{year}", h.Report.GetMonthlyTrend)
				rr.Get("/categories/{year}", h.Report.GetYearlyCategoryTotals)
			})
		})
	})
}
