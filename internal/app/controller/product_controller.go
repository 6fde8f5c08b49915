package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/service"
	apperrors "github.com/norsbakery/storefront/internal/errors"
	"github.com/norsbakery/storefront/internal/middleware"
)

type ProductController struct {
	catalogService service.CatalogService
}

func NewProductController(catalogService service.CatalogService) *ProductController {
	return &ProductController{
		catalogService: catalogService,
	}
}

// ListProducts returns the catalog, optionally filtered
// GET /api/v1/products?category=&featured=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := c.DefaultQuery("category", model.CategoryAll)
	featured := false
	if raw := c.Query("featured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.RespondWithValidationError(c, map[string]string{"featured": "must be true or false"})
			return
		}
		featured = parsed
	}

	catalog := ctrl.catalogService.Load(c.Request.Context())
	products := catalog.ByCategory(category)
	if featured {
		products = model.NewCatalog(products).Featured()
	}

	log.Debug("Products listed", map[string]interface{}{
		"category": category,
		"featured": featured,
		"count":    len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"count":      len(products),
		"categories": catalog.Categories(),
	})
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	catalog := ctrl.catalogService.Load(c.Request.Context())

	product, ok := catalog.Find(model.ProductID(c.Param("id")))
	if !ok {
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, product)
}
