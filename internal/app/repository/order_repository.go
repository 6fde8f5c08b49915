package repository

import (
	"context"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/pkg/logger"
	"github.com/norsbakery/storefront/pkg/supabase"
	"gorm.io/gorm"
)

const ordersTable = "transactions"

// OrderRepository reads a user's order history. accessToken is the caller's
// identity token; row-level security on the hosted store relies on it.
type OrderRepository interface {
	FindByUserID(ctx context.Context, accessToken, userID string) ([]model.Order, error)
}

// TableReader is the part of the Supabase client the order repository needs.
type TableReader interface {
	Select(ctx context.Context, accessToken, table string, out interface{}, filters ...supabase.Filter) error
}

type supabaseOrderRepository struct {
	client TableReader
}

func NewSupabaseOrderRepository(client TableReader) OrderRepository {
	return &supabaseOrderRepository{client: client}
}

func (r *supabaseOrderRepository) FindByUserID(ctx context.Context, accessToken, userID string) ([]model.Order, error) {
	logger.Debug("Querying orders from supabase", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	if err := r.client.Select(ctx, accessToken, ordersTable, &orders, supabase.Eq("user_id", userID)); err != nil {
		logger.Error("Failed to query orders from supabase", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// GormOrderRepository reads the transactions table directly from Postgres.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, _ string, userID string) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

// BulkCreate inserts imported orders in batches.
func (r *GormOrderRepository) BulkCreate(ctx context.Context, orders []model.Order, batchSize int) error {
	if len(orders) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(orders, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create orders", err, map[string]interface{}{
			"count": len(orders),
		})
		return err
	}
	logger.Info("Orders imported", map[string]interface{}{
		"count": len(orders),
	})
	return nil
}
