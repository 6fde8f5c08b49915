package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

// OrderColumns is the header row of the order history workbook.
var OrderColumns = []string{"Order", "Item", "Price", "Placed At"}

type ProfileService interface {
	Profile(ctx context.Context, accessToken string) (*model.User, error)
	Orders(ctx context.Context, accessToken, userID string) ([]model.Order, error)
	ExportOrders(ctx context.Context, accessToken, userID string) ([]byte, error)
}

type profileService struct {
	auth      AuthService
	orderRepo repository.OrderRepository
}

func NewProfileService(auth AuthService, orderRepo repository.OrderRepository) ProfileService {
	return &profileService{
		auth:      auth,
		orderRepo: orderRepo,
	}
}

func (s *profileService) Profile(ctx context.Context, accessToken string) (*model.User, error) {
	return s.auth.CurrentUser(ctx, accessToken)
}

func (s *profileService) Orders(ctx context.Context, accessToken, userID string) ([]model.Order, error) {
	logger.Debug("Fetching order history", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(ctx, accessToken, userID)
	if err != nil {
		logger.Error("Error fetching orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

// ExportOrders renders the order history as an XLSX workbook with one row
// per order.
func (s *profileService) ExportOrders(ctx context.Context, accessToken, userID string) ([]byte, error) {
	orders, err := s.Orders(ctx, accessToken, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ordersSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(ordersSheet, "A1", &OrderColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, order := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		placedAt := ""
		if !order.CreatedAt.IsZero() {
			placedAt = order.CreatedAt.UTC().Format("2006-01-02 15:04")
		}
		row := []interface{}{
			order.ID,
			order.Name,
			order.Price.InexactFloat64(),
			placedAt,
		}
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write order %d: %w", order.ID, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("Order history exported", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return buf.Bytes(), nil
}
