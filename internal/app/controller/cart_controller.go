package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/model"
	"github.com/norsbakery/storefront/internal/app/service"
	apperrors "github.com/norsbakery/storefront/internal/errors"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
)

type CartController struct {
	cartService    service.CartService
	catalogService service.CatalogService
}

func NewCartController(cartService service.CartService, catalogService service.CatalogService) *CartController {
	return &CartController{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

// AddToCartRequest is accepted as a form post or JSON body. Quantity
// defaults to 1.
type AddToCartRequest struct {
	ProductID model.ProductID `form:"product_id" json:"product_id" binding:"required"`
	Quantity  *int            `form:"quantity" json:"quantity"`
}

type UpdateCartRequest struct {
	ProductID model.ProductID `form:"product_id" json:"product_id"`
	Quantity  *int            `form:"quantity" json:"quantity" binding:"required"`
}

type RemoveFromCartRequest struct {
	ProductID model.ProductID `form:"product_id" json:"product_id" binding:"required"`
}

type CartResponse struct {
	Items        []model.CartLineItem `json:"items"`
	ItemCount    int                  `json:"item_count"`
	Total        string               `json:"total"`
	TotalDisplay string               `json:"total_display"`
}

func newCartResponse(cart *model.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []model.CartLineItem{}
	}
	return CartResponse{
		Items:        items,
		ItemCount:    cart.ItemCount(),
		Total:        cart.Total().StringFixed(2),
		TotalDisplay: view.FormatPrice(cart.Total()),
	}
}

func (r AddToCartRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// Add handles the add-to-cart form
// POST /cart/add
func (ctrl *CartController) Add(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid add to cart form", map[string]interface{}{
			"error": err.Error(),
		})
		ctrl.redirectBack(c)
		return
	}

	catalog := ctrl.catalogService.Load(c.Request.Context())
	_, err := ctrl.cartService.AddToCart(c.Request.Context(), cartKey(c, ctrl.cartService), catalog, req.ProductID, req.quantity())
	if err != nil && !isSilentCartMiss(err) {
		ctrl.fail(c, err)
		return
	}
	ctrl.redirectBack(c)
}

// Update handles the quantity -/+ buttons
// POST /cart/update
func (ctrl *CartController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartRequest
	if err := c.ShouldBind(&req); err != nil || req.ProductID == "" {
		log.Warn("Invalid cart update form", map[string]interface{}{
			"product_id": req.ProductID,
		})
		ctrl.redirectBack(c)
		return
	}

	_, err := ctrl.cartService.UpdateCartQuantity(c.Request.Context(), cartKey(c, ctrl.cartService), req.ProductID, *req.Quantity)
	if err != nil && !isSilentCartMiss(err) {
		ctrl.fail(c, err)
		return
	}
	ctrl.redirectBack(c)
}

// Remove handles the remove button
// POST /cart/remove
func (ctrl *CartController) Remove(c *gin.Context) {
	var req RemoveFromCartRequest
	if err := c.ShouldBind(&req); err != nil {
		ctrl.redirectBack(c)
		return
	}

	_, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), cartKey(c, ctrl.cartService), req.ProductID)
	if err != nil && !isSilentCartMiss(err) {
		ctrl.fail(c, err)
		return
	}
	ctrl.redirectBack(c)
}

// Clear empties the cart
// POST /cart/clear
func (ctrl *CartController) Clear(c *gin.Context) {
	if _, err := ctrl.cartService.ClearCart(c.Request.Context(), cartKey(c, ctrl.cartService)); err != nil {
		ctrl.fail(c, err)
		return
	}
	ctrl.redirectBack(c)
}

// Checkout moves to the checkout page unless the cart is empty
// POST /cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	_, err := ctrl.cartService.Checkout(c.Request.Context(), cartKey(c, ctrl.cartService))
	switch {
	case errors.Is(err, service.ErrCartEmpty):
		ctrl.redirectBack(c)
	case err != nil:
		ctrl.fail(c, err)
	default:
		c.Redirect(http.StatusSeeOther, "/checkout")
	}
}

// GetCart returns the visitor's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.cartService.GetCart(c.Request.Context(), cartKey(c, ctrl.cartService))
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddItem adds a product to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{"product_id": "required"})
		return
	}

	catalog := ctrl.catalogService.Load(c.Request.Context())
	cart, err := ctrl.cartService.AddToCart(c.Request.Context(), cartKey(c, ctrl.cartService), catalog, req.ProductID, req.quantity())
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// UpdateItem sets a line's quantity; zero or less removes it
// PUT /api/v1/cart/items/:productId
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{"quantity": "required"})
		return
	}

	cart, err := ctrl.cartService.UpdateCartQuantity(c.Request.Context(), cartKey(c, ctrl.cartService), model.ProductID(c.Param("productId")), *req.Quantity)
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart item")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveItem drops a line from the cart
// DELETE /api/v1/cart/items/:productId
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cart, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), cartKey(c, ctrl.cartService), model.ProductID(c.Param("productId")))
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart item")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// ClearCart empties the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart, err := ctrl.cartService.ClearCart(c.Request.Context(), cartKey(c, ctrl.cartService))
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, newCartResponse(cart))
}

// StartCheckout reports where to continue checkout
// POST /api/v1/cart/checkout
func (ctrl *CartController) StartCheckout(c *gin.Context) {
	cart, err := ctrl.cartService.Checkout(c.Request.Context(), cartKey(c, ctrl.cartService))
	if err != nil {
		apperrors.RespondWithParsedError(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"redirect": "/checkout",
		"cart":     newCartResponse(cart),
	})
}

func (ctrl *CartController) redirectBack(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, safeReturnPath(c.PostForm("return"), "/"))
}

func (ctrl *CartController) fail(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Error("Cart action failed", err, map[string]interface{}{
		"path": c.Request.URL.Path,
	})
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// isSilentCartMiss reports lookup misses the storefront pages ignore.
func isSilentCartMiss(err error) bool {
	return errors.Is(err, service.ErrProductNotFound) ||
		errors.Is(err, service.ErrCartItemNotFound) ||
		errors.Is(err, service.ErrInvalidQuantity)
}
