package db

import (
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/pkg/logger"
)

// Migrate creates the tables the storefront owns. The transactions table
// belongs to the hosted backend and is never migrated from here.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.CartSnapshot{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// MigrateOrders creates a local transactions table for development
// databases that stand in for the hosted backend.
func MigrateOrders() error {
	if err := DB.AutoMigrate(&model.Order{}); err != nil {
		logger.Error("Failed to migrate transactions table", err)
		return err
	}
	return nil
}
