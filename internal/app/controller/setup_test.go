package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/config"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
	"github.com/norsbakery/storefront/pkg/supabase"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubProductLister struct {
	products []model.Product
	err      error
}

func (s *stubProductLister) ListProducts(context.Context) ([]model.Product, error) {
	return s.products, s.err
}

type fakeIdentity struct {
	signOuts int
}

const (
	testEmail       = "nor@bakery.my"
	testPassword    = "kuih-lapis"
	testAccessToken = "token-nor"
)

func (f *fakeIdentity) SignInWithPassword(_ context.Context, email, password string) (*supabase.Session, error) {
	if email != testEmail || password != testPassword {
		return nil, &supabase.APIError{Status: 400, Code: "invalid_grant", Message: "Invalid login credentials"}
	}
	return &supabase.Session{
		AccessToken: testAccessToken,
		User:        supabase.User{ID: "user-1", Email: testEmail},
	}, nil
}

func (f *fakeIdentity) GetUser(_ context.Context, accessToken string) (*supabase.User, error) {
	if accessToken != testAccessToken {
		return nil, &supabase.APIError{Status: 401, Message: "invalid JWT"}
	}
	return &supabase.User{
		ID:        "user-1",
		Email:     testEmail,
		CreatedAt: time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeIdentity) SignOut(context.Context, string) error {
	f.signOuts++
	return nil
}

type stubOrderRepository struct {
	orders []model.Order
	err    error
}

func (r *stubOrderRepository) FindByUserID(context.Context, string, string) ([]model.Order, error) {
	return r.orders, r.err
}

// testEnv is a fully wired storefront backed by miniredis and in-memory
// fakes. It carries cookies between requests like a browser would.
type testEnv struct {
	t        *testing.T
	router   *gin.Engine
	catalog  *stubProductLister
	identity *fakeIdentity
	orders   *stubOrderRepository
	cartRepo repository.CartRepository
	cookies  map[string]*http.Cookie
}

func testCatalogProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Sourdough Loaf", Description: "Slow **fermented**", Price: decimal.RequireFromString("10.00"), Category: "bread", Featured: true},
		{ID: "2", Name: "Pandan Chiffon", Price: decimal.RequireFromString("15.50"), Category: "cakes", Featured: true},
		{ID: "3", Name: "Butter Croissant", Price: decimal.RequireFromString("4.35"), Category: "pastries"},
	}
}

func setupControllerTest(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		t:        t,
		catalog:  &stubProductLister{products: testCatalogProducts()},
		identity: &fakeIdentity{},
		orders:   &stubOrderRepository{},
		cartRepo: repository.NewRedisCartRepository(client, time.Hour),
		cookies:  map[string]*http.Cookie{},
	}

	cartService := service.NewCartService(env.cartRepo, "norsCart")
	catalogService := service.NewCatalogService(env.catalog)
	authService := service.NewAuthService(env.identity)
	profileService := service.NewProfileService(authService, env.orders)
	sessions := middleware.NewSessionMiddleware(&config.SessionConfig{
		Secret:     "controller-test-secret",
		CookieName: "nors_session",
		TTL:        time.Hour,
	})
	pages := NewPageBuilder(cartService)

	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(middleware.LoggingMiddleware(), sessions.Load())

	pageCtrl := NewPageController(catalogService, pages)
	cartCtrl := NewCartController(cartService, catalogService)
	productCtrl := NewProductController(catalogService)
	authCtrl := NewAuthController(authService, sessions, pages)
	profileCtrl := NewProfileController(profileService, pages)

	router.GET("/", pageCtrl.Home)
	router.GET("/products", pageCtrl.Products)
	router.GET("/checkout", pageCtrl.Checkout)
	router.GET("/login", authCtrl.LoginPage)
	router.POST("/login", authCtrl.Login)
	router.POST("/logout", authCtrl.Logout)
	router.GET("/profile", sessions.RequireLogin(), profileCtrl.Profile)
	router.GET("/profile/orders.xlsx", sessions.RequireLogin(), profileCtrl.ExportOrders)

	cart := router.Group("/cart")
	cart.POST("/add", cartCtrl.Add)
	cart.POST("/update", cartCtrl.Update)
	cart.POST("/remove", cartCtrl.Remove)
	cart.POST("/clear", cartCtrl.Clear)
	cart.POST("/checkout", cartCtrl.Checkout)

	api := router.Group("/api/v1")
	api.GET("/products", productCtrl.ListProducts)
	api.GET("/products/:id", productCtrl.GetProduct)
	api.GET("/cart", cartCtrl.GetCart)
	api.DELETE("/cart", cartCtrl.ClearCart)
	api.POST("/cart/items", cartCtrl.AddItem)
	api.PUT("/cart/items/:productId", cartCtrl.UpdateItem)
	api.DELETE("/cart/items/:productId", cartCtrl.RemoveItem)
	api.POST("/cart/checkout", cartCtrl.StartCheckout)

	env.router = router
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) cartJSON() CartResponse {
	w := e.get("/api/v1/cart")
	require.Equal(e.t, http.StatusOK, w.Code)
	var resp CartResponse
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) signIn() {
	w := e.postForm("/login", url.Values{"email": {testEmail}, "password": {testPassword}})
	require.Equal(e.t, http.StatusSeeOther, w.Code)
}
