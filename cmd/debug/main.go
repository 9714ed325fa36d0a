package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/wavesight/earnings-service/internal/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default/environment variables")
	}

	// Construct connection string
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
	)

	dbPool, err := database.NewPool(connString, 5, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx := context.Background()

	// Dump Profiles
	fmt.Println("--- User Profiles ---")
	rows, err := dbPool.Query(ctx, `
		SELECT user_id, tier, trends_submitted, trends_approved, current_balance, today_earned, daily_streak
		FROM user_profiles ORDER BY total_earned DESC
	`)
	if err != nil {
		log.Printf("Failed to query profiles: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var userID, tier string
			var submitted, approved, streak int
			var balance, today float64
			if err := rows.Scan(&userID, &tier, &submitted, &approved, &balance, &today, &streak); err != nil {
				log.Printf("Failed to scan profile: %v", err)
			}
			fmt.Printf("User: %s, Tier: %s, Submitted: %d, Approved: %d, Balance: $%.2f, Today: $%.2f, Streak: %d\n",
				userID, tier, submitted, approved, balance, today, streak)
		}
	}

	// Dump Pending Trends
	fmt.Println("\n--- Pending Trends ---")
	rows, err = dbPool.Query(ctx, `
		SELECT trend_id, spotter_id, title, verify_votes, reject_votes, submitted_at
		FROM trend_submissions WHERE status = 'pending' ORDER BY submitted_at
	`)
	if err != nil {
		log.Printf("Failed to query trends: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var trendID, spotterID, title string
			var verify, reject int
			var submittedAt time.Time
			if err := rows.Scan(&trendID, &spotterID, &title, &verify, &reject, &submittedAt); err != nil {
				log.Printf("Failed to scan trend: %v", err)
			}
			fmt.Printf("Trend: %s, Spotter: %s, Title: %q, Votes: %d/%d, SubmittedAt: %s\n",
				trendID, spotterID, title, verify, reject, submittedAt.Format(time.RFC3339))
		}
	}

	// Dump Recent Ledger Entries
	fmt.Println("\n--- Recent Ledger Entries ---")
	rows, err = dbPool.Query(ctx, `
		SELECT entry_id, user_id, entry_type, amount, status, created_at
		FROM earnings_ledger ORDER BY created_at DESC LIMIT 50
	`)
	if err != nil {
		log.Printf("Failed to query ledger: %v", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var entryID, userID, entryType, status string
			var amount float64
			var createdAt time.Time
			if err := rows.Scan(&entryID, &userID, &entryType, &amount, &status, &createdAt); err != nil {
				log.Printf("Failed to scan entry: %v", err)
			}
			fmt.Printf("Entry: %s, User: %s, Type: %s, Amount: $%.2f, Status: %s, At: %s\n",
				entryID, userID, entryType, amount, status, createdAt.Format(time.RFC3339))
		}
	}
}
