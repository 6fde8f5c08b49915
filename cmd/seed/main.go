package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/norsbakery/storefront/config"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Expected columns: User ID, Item, Price, Placed At
const (
	colUserID = iota
	colName
	colPrice
	colPlacedAt
)

var placedAtLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <orders.xlsx>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.MigrateOrders(); err != nil {
		log.Fatal("Failed to prepare transactions table:", err)
	}

	orderRepo := repository.NewOrderRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	orders, err := readOrdersFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total orders to import: %d\n", len(orders))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := orderRepo.BulkCreate(context.Background(), orders, batchSize); err != nil {
		log.Fatal("Failed to bulk create orders:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total orders imported: %d\n", len(orders))
}

func readOrdersFromXLSX(filePath string) ([]model.Order, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	orders, skipped := parseOrderRows(rows)

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid orders: %d\n", len(orders))
	fmt.Printf("  Skipped rows: %d\n", skipped)

	return orders, nil
}

// parseOrderRows converts sheet rows to orders, skipping the header row and
// any row without a user, an item name or a non-negative price.
func parseOrderRows(rows [][]string) ([]model.Order, int) {
	var orders []model.Order
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) <= colPrice {
			skipped++
			continue
		}

		userID := strings.TrimSpace(row[colUserID])
		name := strings.TrimSpace(row[colName])
		if userID == "" || name == "" {
			skipped++
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row[colPrice]))
		if err != nil || price.IsNegative() {
			skipped++
			continue
		}

		order := model.Order{
			UserID: userID,
			Name:   name,
			Price:  price.Round(2),
		}
		if len(row) > colPlacedAt {
			order.CreatedAt = parsePlacedAt(row[colPlacedAt])
		}
		orders = append(orders, order)
	}

	return orders, skipped
}

// parsePlacedAt returns the zero time for blank or unreadable cells so gorm
// stamps the row with the import time.
func parsePlacedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range placedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
