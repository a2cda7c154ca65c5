package main

import (
	"context"
	"fmt"
	"log"

	"github.com/instacontent/instacontent-api/internal/config"
	"github.com/instacontent/instacontent-api/internal/database"
	"github.com/instacontent/instacontent-api/internal/services"
)

// Run on the first of each month to reset every agency client's content
// usage counter.
func main() {
	databaseURL, err := config.LoadDatabase()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	agencyService := services.NewAgencyService(db)

	reset, err := agencyService.ResetMonthlyUsage(ctx)
	if err != nil {
		log.Fatalf("Failed to reset monthly usage: %v", err)
	}

	fmt.Printf("Reset monthly usage for %d clients\n", reset)
}
