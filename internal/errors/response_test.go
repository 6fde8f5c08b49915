package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, handler func(c *gin.Context)) (int, ErrorResponse) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handler(c)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestRespondWithParsedError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"Not found", service.ErrProductNotFound, http.StatusNotFound, ProductNotFound, "Product not found"},
		{"Bad request", service.ErrInvalidQuantity, http.StatusBadRequest, ValidationInvalidQuantity, "Quantity must be between 1 and 999"},
		{"Unauthorized", service.ErrNotAuthenticated, http.StatusUnauthorized, AuthUnauthorized, "Please sign in first"},
		{"Conflict", service.ErrCartEmpty, http.StatusConflict, CartEmpty, "Your cart is empty"},
		{"Internal", errors.New("disk full"), http.StatusInternalServerError, InternalServerError, "Failed to load cart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := respond(t, func(c *gin.Context) {
				RespondWithParsedError(c, tt.err, "cart")
			})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestResponseHelpers_DefaultMessages(t *testing.T) {
	status, resp := respond(t, func(c *gin.Context) { Unauthorized(c, "") })
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Please sign in first", resp.Message)

	status, resp = respond(t, func(c *gin.Context) { InternalError(c, "") })
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, InternalServerError, resp.Error)
	assert.Equal(t, "Something went wrong. Please try again later", resp.Message)

	status, resp = respond(t, func(c *gin.Context) { NotFound(c, ResourceNotFound, "Resource not found") })
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, ResourceNotFound, resp.Error)
}
