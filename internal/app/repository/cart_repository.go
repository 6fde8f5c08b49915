package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSnapshotNotFound means nothing has been stored under the key yet.
var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// CartRepository stores one serialized cart per key. It knows nothing about
// the payload format.
type CartRepository interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, payload string) error
	Delete(ctx context.Context, key string) error
}

// CartSnapshotPurger is implemented by stores that do not expire keys on
// their own.
type CartSnapshotPurger interface {
	DeleteStaleSnapshots(ctx context.Context, olderThan time.Time) (int64, error)
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository keeps snapshots in Redis. Every save refreshes the
// key's TTL; ttl <= 0 keeps keys forever.
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, ttl: ttl}
}

func (r *redisCartRepository) Load(ctx context.Context, key string) (string, error) {
	payload, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSnapshotNotFound
	}
	if err != nil {
		logger.Error("Failed to load cart snapshot from redis", err, map[string]interface{}{
			"cart_key": key,
		})
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return payload, nil
}

func (r *redisCartRepository) Save(ctx context.Context, key, payload string) error {
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to save cart snapshot to redis", err, map[string]interface{}{
			"cart_key": key,
		})
		return fmt.Errorf("redis set failed: %w", err)
	}
	logger.Debug("Cart snapshot saved to redis", map[string]interface{}{
		"cart_key": key,
		"bytes":    len(payload),
	})
	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// GormCartRepository keeps snapshots in the cart_snapshots table.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Load(ctx context.Context, key string) (string, error) {
	var snapshot model.CartSnapshot
	err := r.db.WithContext(ctx).Where("cart_key = ?", key).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrSnapshotNotFound
	}
	if err != nil {
		logger.Error("Failed to load cart snapshot from database", err, map[string]interface{}{
			"cart_key": key,
		})
		return "", err
	}
	return snapshot.Payload, nil
}

func (r *GormCartRepository) Save(ctx context.Context, key, payload string) error {
	snapshot := model.CartSnapshot{
		CartKey:   key,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		logger.Error("Failed to save cart snapshot to database", err, map[string]interface{}{
			"cart_key": key,
		})
		return err
	}
	logger.Debug("Cart snapshot saved to database", map[string]interface{}{
		"cart_key": key,
		"bytes":    len(payload),
	})
	return nil
}

func (r *GormCartRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("cart_key = ?", key).Delete(&model.CartSnapshot{}).Error
}

func (r *GormCartRepository) DeleteStaleSnapshots(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", olderThan).Delete(&model.CartSnapshot{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart snapshots", result.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, result.Error
	}
	logger.Debug("Stale cart snapshots deleted", map[string]interface{}{
		"older_than": olderThan,
		"count":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}
