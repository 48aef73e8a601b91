package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/moneywatch/moneywatch/internal"
	"github.com/moneywatch/moneywatch/internal/auth"
	authPostgres "github.com/moneywatch/moneywatch/internal/auth/postgres"
	"github.com/moneywatch/moneywatch/internal/category"
	categoryPostgres "github.com/moneywatch/moneywatch/internal/category/postgres"
	"github.com/moneywatch/moneywatch/internal/expense"
	expensePostgres "github.com/moneywatch/moneywatch/internal/expense/postgres"
	"github.com/moneywatch/moneywatch/internal/recurring"
	recurringPostgres "github.com/moneywatch/moneywatch/internal/recurring/postgres"
	"github.com/moneywatch/moneywatch/internal/report"
	"github.com/moneywatch/moneywatch/internal/salary"
	salaryPostgres "github.com/moneywatch/moneywatch/internal/salary/postgres"
	"github.com/moneywatch/moneywatch/internal/summary"
	"github.com/moneywatch/moneywatch/internal/transport/rest"
	"github.com/moneywatch/moneywatch/internal/user"
	userPostgres "github.com/moneywatch/moneywatch/internal/user/postgres"
	"github.com/moneywatch/moneywatch/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"), cfg.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to unwrap sql.DB", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	handlers := buildHandlers(cfg, db, log)
	rest.RegisterAllRoutes(router, sqlDB, handlers, cfg.Server.AllowedOrigins, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}

func buildHandlers(cfg *internal.Config, db *gorm.DB, log *slog.Logger) rest.Handlers {
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewUserRepository(db), tokenGen, cfg.Security.BCryptCost, log)

	userService := user.NewService(userPostgres.NewRepository(db))
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(db), log)

	expenseRepo := expensePostgres.NewExpenseRepository(db)
	expenseService := expense.NewService(expenseRepo, log)

	recurringService := recurring.NewService(recurringPostgres.NewRepository(db), expenseRepo, log)

	salaryService := salary.NewService(salaryPostgres.NewRepository(db), log)
	summaryService := summary.NewService(salaryService, expenseService, log)
	reportService := report.NewService(expenseService, log)

	return rest.Handlers{
		Auth:      auth.NewHandler(authService),
		User:      user.NewHandler(userService),
		Expense:   expense.NewHandler(expenseService, recurringService),
		Category:  category.NewHandler(categoryService),
		Recurring: recurring.NewHandler(recurringService),
		Salary:    salary.NewHandler(salaryService),
		Summary:   summary.NewHandler(summaryService),
		Report:    report.NewHandler(reportService),
	}
}

// initDB opens the gorm connection and applies the pool settings.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
