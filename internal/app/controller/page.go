package controller

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
)

// PageBuilder assembles the parts every HTML page shares: navigation and
// the visitor's restored cart.
type PageBuilder struct {
	cartService service.CartService
}

func NewPageBuilder(cartService service.CartService) *PageBuilder {
	return &PageBuilder{cartService: cartService}
}

// Build restores the cart and wraps body in a page. A cart that cannot be
// restored renders as empty.
func (b *PageBuilder) Build(c *gin.Context, current, title string, body interface{}) view.Page {
	return view.Page{
		Title:   title,
		Current: current,
		Nav:     view.NewNavView(current, middleware.GetAccessToken(c) != ""),
		Cart:    view.NewCartView(b.cart(c)),
		Path:    c.Request.URL.RequestURI(),
		Body:    body,
	}
}

func (b *PageBuilder) cart(c *gin.Context) *model.Cart {
	cart, err := b.cartService.GetCart(c.Request.Context(), cartKey(c, b.cartService))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to restore cart for page", err)
		return model.NewCart()
	}
	return cart
}

func cartKey(c *gin.Context, cartService service.CartService) string {
	return cartService.Key(middleware.GetSessionID(c))
}

// safeReturnPath accepts only same-site relative paths.
func safeReturnPath(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}
