package controller

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestProfileController_RequiresLogin(t *testing.T) {
	env := setupControllerTest(t)

	for _, path := range []string{"/profile", "/profile/orders.xlsx"} {
		w := env.get(path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestProfileController_Profile(t *testing.T) {
	env := setupControllerTest(t)
	env.orders.orders = []model.Order{
		{ID: 7, Name: "Kaya Puff x6", Price: decimal.RequireFromString("9.9")},
	}
	env.signIn()

	w := env.get("/profile")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<h1 id="user-display-name">nor</h1>`)
	assert.Contains(t, body, `<p id="user-email">nor@bakery.my</p>`)
	assert.Contains(t, body, `<span id="user-joined">9 Mar 2024</span>`)
	assert.Contains(t, body, "<strong>Order ID:</strong> #7")
	assert.Contains(t, body, "<strong>Total:</strong> RM9.90")
	assert.Contains(t, body, `<a href="/profile" class="active">Profile</a>`)
}

func TestProfileController_Profile_NoOrders(t *testing.T) {
	env := setupControllerTest(t)
	env.signIn()

	body := env.get("/profile").Body.String()
	assert.Contains(t, body, "You haven&#39;t placed any orders yet.")
	assert.NotContains(t, body, "link-export-orders")
}

func TestProfileController_Profile_OrdersError(t *testing.T) {
	env := setupControllerTest(t)
	env.orders.err = errors.New("permission denied")
	env.signIn()

	w := env.get("/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error loading orders.")
}

func TestProfileController_ExportOrders(t *testing.T) {
	env := setupControllerTest(t)
	env.orders.orders = []model.Order{
		{ID: 7, Name: "Kaya Puff x6", Price: decimal.RequireFromString("9.9")},
		{ID: 8, Name: "Sourdough Loaf", Price: decimal.RequireFromString("12")},
	}
	env.signIn()

	w := env.get("/profile/orders.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestProfileController_ExportOrders_Error(t *testing.T) {
	env := setupControllerTest(t)
	env.orders.err = errors.New("permission denied")
	env.signIn()

	w := env.get("/profile/orders.xlsx")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ORDERS_UNAVAILABLE")
}
