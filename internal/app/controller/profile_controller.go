package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/service"
	apperrors "github.com/norsbakery/storefront/internal/errors"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProfileController struct {
	profileService service.ProfileService
	pages          *PageBuilder
}

func NewProfileController(profileService service.ProfileService, pages *PageBuilder) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		pages:          pages,
	}
}

// Profile renders the account card and order history
// GET /profile
func (ctrl *ProfileController) Profile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	accessToken := middleware.GetAccessToken(c)

	user, err := ctrl.profileService.Profile(c.Request.Context(), accessToken)
	if err != nil {
		if !errors.Is(err, service.ErrNotAuthenticated) {
			log.Error("Failed to load profile", err)
		}
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}

	orders, ordersErr := ctrl.profileService.Orders(c.Request.Context(), accessToken, user.ID)

	page := ctrl.pages.Build(c, view.PageProfile, "Profile", view.ProfileBody{
		Profile: view.NewProfileView(user, orders, ordersErr),
	})
	c.HTML(http.StatusOK, view.PageProfile, page)
}

// ExportOrders downloads the order history as a spreadsheet
// GET /profile/orders.xlsx
func (ctrl *ProfileController) ExportOrders(c *gin.Context) {
	accessToken := middleware.GetAccessToken(c)

	user, err := ctrl.profileService.Profile(c.Request.Context(), accessToken)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.Redirect(http.StatusSeeOther, middleware.LoginPath)
			return
		}
		apperrors.RespondWithParsedError(c, err, "profile")
		return
	}

	data, err := ctrl.profileService.ExportOrders(c.Request.Context(), accessToken, user.ID)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.OrdersUnavailable, view.OrdersErrorMessage)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
