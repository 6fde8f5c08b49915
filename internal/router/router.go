package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/norsbakery/storefront/config"
	"github.com/norsbakery/storefront/internal/app/controller"
	apperrors "github.com/norsbakery/storefront/internal/errors"
	"github.com/norsbakery/storefront/internal/middleware"
)

type Router struct {
	pageController    *controller.PageController
	cartController    *controller.CartController
	productController *controller.ProductController
	authController    *controller.AuthController
	profileController *controller.ProfileController
	sessions          *middleware.SessionMiddleware
	renderer          render.HTMLRender
	config            *config.Config
}

func NewRouter(
	pageController *controller.PageController,
	cartController *controller.CartController,
	productController *controller.ProductController,
	authController *controller.AuthController,
	profileController *controller.ProfileController,
	sessions *middleware.SessionMiddleware,
	renderer render.HTMLRender,
	cfg *config.Config,
) *Router {
	return &Router{
		pageController:    pageController,
		cartController:    cartController,
		productController: productController,
		authController:    authController,
		profileController: profileController,
		sessions:          sessions,
		renderer:          renderer,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.HTMLRender = r.renderer

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Nor's Bakery storefront is running",
		})
	})

	site := router.Group("/", r.sessions.Load())
	{
		site.GET("/", r.pageController.Home)
		site.GET("/products", r.pageController.Products)
		site.GET("/checkout", r.pageController.Checkout)

		site.GET("/login", r.authController.LoginPage)
		site.POST("/login", r.authController.Login)
		site.POST("/logout", r.authController.Logout)

		profile := site.Group("/profile", r.sessions.RequireLogin())
		{
			profile.GET("", r.profileController.Profile)
			profile.GET("/orders.xlsx", r.profileController.ExportOrders)
		}

		cart := site.Group("/cart")
		{
			cart.POST("/add", r.cartController.Add)
			cart.POST("/update", r.cartController.Update)
			cart.POST("/remove", r.cartController.Remove)
			cart.POST("/clear", r.cartController.Clear)
			cart.POST("/checkout", r.cartController.Checkout)
		}

		v1 := site.Group("/api/v1")
		{
			products := v1.Group("/products")
			{
				products.GET("", r.productController.ListProducts)
				products.GET("/:id", r.productController.GetProduct)
			}

			cartAPI := v1.Group("/cart")
			{
				cartAPI.GET("", r.cartController.GetCart)
				cartAPI.DELETE("", r.cartController.ClearCart)
				cartAPI.POST("/items", r.cartController.AddItem)
				cartAPI.PUT("/items/:productId", r.cartController.UpdateItem)
				cartAPI.DELETE("/items/:productId", r.cartController.RemoveItem)
				cartAPI.POST("/checkout", r.cartController.StartCheckout)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Resource not found")
			return
		}
		c.String(http.StatusNotFound, "Page not found")
	})

	return router
}
