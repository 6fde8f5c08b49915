package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
)

const loginFailedPrefix = "Login failed: "

type AuthController struct {
	authService service.AuthService
	sessions    *middleware.SessionMiddleware
	pages       *PageBuilder
}

func NewAuthController(authService service.AuthService, sessions *middleware.SessionMiddleware, pages *PageBuilder) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		pages:       pages,
	}
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginPage renders the sign-in form
// GET /login
func (ctrl *AuthController) LoginPage(c *gin.Context) {
	page := ctrl.pages.Build(c, view.PageLogin, "Sign in", view.LoginBody{})
	c.HTML(http.StatusOK, view.PageLogin, page)
}

// Login signs in with email and password
// POST /login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn("Invalid login form", map[string]interface{}{
			"error": err.Error(),
		})
	}
	req.Email = strings.TrimSpace(req.Email)

	log.Info("Attempting login", map[string]interface{}{
		"email": req.Email,
	})

	_, accessToken, err := ctrl.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		page := ctrl.pages.Build(c, view.PageLogin, "Sign in", view.LoginBody{
			Email: req.Email,
			Error: loginFailedPrefix + err.Error(),
		})
		c.HTML(http.StatusUnauthorized, view.PageLogin, page)
		return
	}

	if err := ctrl.sessions.SignIn(c, accessToken); err != nil {
		log.Error("Failed to store session", err)
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	log.Info("Login success")
	c.Redirect(http.StatusSeeOther, "/profile")
}

// Logout signs out and returns to the home page
// POST /logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ctrl.authService.SignOut(c.Request.Context(), middleware.GetAccessToken(c))
	if err := ctrl.sessions.SignOut(c); err != nil {
		log.Error("Failed to clear session", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
