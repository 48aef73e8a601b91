package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"expenses", "recurring_expenses", "salaries", "categories", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		demoEmail := "demo@mail.com"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", demoEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("demo user already exists; nothing to seed")
			return
		}

		if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", demoEmail, "Demo", string(hash)).Error; err != nil {
			log.Fatalf("failed to insert demo user: %v", err)
		}
		fmt.Println("Seeded demo user:", demoEmail)

		var userID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", demoEmail).Row().Scan(&userID); err != nil {
			log.Fatalf("failed to lookup demo user id: %v", err)
		}

		categories := []struct {
			Name  string
			Color string
		}{
			{"Food", "#4E79A7"},
			{"Transport", "#F28E2B"},
			{"Housing", "#E15759"},
			{"Entertainment", "#76B7B2"},
		}
		for _, c := range categories {
			if err := db.Exec("INSERT INTO categories (user_id, name, color, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", userID, c.Name, c.Color).Error; err != nil {
				log.Fatalf("failed to insert category %s: %v", c.Name, err)
			}
		}
		fmt.Println("Seeded categories")

		if err := db.Exec("INSERT INTO salaries (user_id, amount, description, is_active, created_at, updated_at) VALUES (?, 5000, 'Monthly salary', true, now(), now())", userID).Error; err != nil {
			log.Fatalf("failed to insert salary: %v", err)
		}
		fmt.Println("Seeded active salary")

		var housingID int64
		if err := db.Raw("SELECT id FROM categories WHERE user_id = ? AND name = 'Housing'", userID).Row().Scan(&housingID); err != nil {
			log.Fatalf("failed to lookup housing category: %v", err)
		}

		if err := db.Exec("INSERT INTO recurring_expenses (user_id, name, amount, category_id, due_day_of_month, is_active, created_at, updated_at) VALUES (?, 'Rent', 1200, ?, 1, true, now(), now())", userID, housingID).Error; err != nil {
			log.Fatalf("failed to insert recurring template: %v", err)
		}
		fmt.Println("Seeded recurring template")

		currentPeriod := time.Now().Format("2006-01")
		expenses := []struct {
			Name   string
			Amount int
			Cat    string
		}{
			{"Groceries", 180, "Food"},
			{"Bus pass", 60, "Transport"},
			{"Cinema", 25, "Entertainment"},
		}
		for _, e := range expenses {
			var catID int64
			if err := db.Raw("SELECT id FROM categories WHERE user_id = ? AND name = ?", userID, e.Cat).Row().Scan(&catID); err != nil {
				log.Fatalf("failed to lookup category %s: %v", e.Cat, err)
			}
			if err := db.Exec("INSERT INTO expenses (user_id, name, amount, period, bank, category_id, paid, created_at, updated_at) VALUES (?, ?, ?, ?, 'Default Bank', ?, false, now(), now())", userID, e.Name, e.Amount, currentPeriod, catID).Error; err != nil {
				log.Fatalf("failed to insert expense %s: %v", e.Name, err)
			}
		}
		fmt.Println("Seeded expenses for", currentPeriod)
	},
}
