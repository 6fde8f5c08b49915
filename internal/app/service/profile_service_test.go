package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubOrderRepository struct {
	orders    map[string][]model.Order
	err       error
	lastToken string
}

func (r *stubOrderRepository) FindByUserID(_ context.Context, accessToken, userID string) ([]model.Order, error) {
	r.lastToken = accessToken
	if r.err != nil {
		return nil, r.err
	}
	return r.orders[userID], nil
}

func setupProfileServiceTest() (ProfileService, *stubOrderRepository) {
	orders := &stubOrderRepository{orders: map[string][]model.Order{
		"user-1": {
			{ID: 41, UserID: "user-1", Name: "Sourdough Loaf", Price: decimal.RequireFromString("12.00"), CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
			{ID: 42, UserID: "user-1", Name: "Kaya Puff x6", Price: decimal.RequireFromString("9.90")},
		},
	}}
	return NewProfileService(NewAuthService(newFakeIdentity()), orders), orders
}

func TestProfileService_Profile(t *testing.T) {
	svc, _ := setupProfileServiceTest()

	user, err := svc.Profile(context.Background(), "token-nor")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = svc.Profile(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestProfileService_Orders(t *testing.T) {
	svc, repo := setupProfileServiceTest()

	orders, err := svc.Orders(context.Background(), "token-nor", "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "token-nor", repo.lastToken)

	orders, err = svc.Orders(context.Background(), "token-nor", "user-2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestProfileService_Orders_Error(t *testing.T) {
	svc, repo := setupProfileServiceTest()
	repo.err = errors.New("relation \"transactions\" does not exist")

	_, err := svc.Orders(context.Background(), "token-nor", "user-1")
	assert.Error(t, err)
}

func TestProfileService_ExportOrders(t *testing.T) {
	svc, _ := setupProfileServiceTest()

	data, err := svc.ExportOrders(context.Background(), "token-nor", "user-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OrderColumns, rows[0])
	assert.Equal(t, "41", rows[1][0])
	assert.Equal(t, "Sourdough Loaf", rows[1][1])
	assert.Equal(t, "12", rows[1][2])
	assert.Equal(t, "2024-05-01 09:30", rows[1][3])
	assert.Equal(t, "9.9", rows[2][2])
}

func TestProfileService_ExportOrders_Error(t *testing.T) {
	svc, repo := setupProfileServiceTest()
	repo.err = errors.New("timeout")

	data, err := svc.ExportOrders(context.Background(), "token-nor", "user-1")
	assert.Error(t, err)
	assert.Nil(t, data)
}
