package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
)

type PageController struct {
	catalogService service.CatalogService
	pages          *PageBuilder
}

func NewPageController(catalogService service.CatalogService, pages *PageBuilder) *PageController {
	return &PageController{
		catalogService: catalogService,
		pages:          pages,
	}
}

// Home renders the featured products
// GET /
func (ctrl *PageController) Home(c *gin.Context) {
	page := ctrl.pages.Build(c, view.PageHome, "", nil)
	catalog := ctrl.catalogService.Load(c.Request.Context())

	page.Body = view.HomeBody{
		Featured: view.NewProductCards(catalog.Featured(), true, page.Path),
	}
	c.HTML(http.StatusOK, view.PageHome, page)
}

// Products renders the product grid filtered by category
// GET /products?category=
func (ctrl *PageController) Products(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := strings.TrimSpace(c.DefaultQuery("category", model.CategoryAll))
	if category == "" {
		category = model.CategoryAll
	}

	page := ctrl.pages.Build(c, view.PageProducts, "Products", nil)
	catalog := ctrl.catalogService.Load(c.Request.Context())
	products := catalog.ByCategory(category)

	log.Debug("Rendering products", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})

	page.Body = view.ProductsBody{
		Filters:  view.NewCategoryFilters(catalog.Categories(), category),
		Category: category,
		Products: view.NewProductCards(products, false, page.Path),
	}
	c.HTML(http.StatusOK, view.PageProducts, page)
}

// Checkout renders the order summary
// GET /checkout
func (ctrl *PageController) Checkout(c *gin.Context) {
	page := ctrl.pages.Build(c, view.PageCheckout, "Checkout", view.CheckoutBody{})
	c.HTML(http.StatusOK, view.PageCheckout, page)
}
