package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/pkg/catalogapi"
	"github.com/norsbakery/storefront/pkg/supabase"
)

// ErrorInfo is the HTTP rendering of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError maps service and client errors to a status, code and message.
// resource names the thing being acted on ("product", "cart item") and is
// used in not-found messages.
func ParseError(err error, resource string) ErrorInfo {
	switch {
	case err == nil:
		return ErrorInfo{http.StatusInternalServerError, InternalServerError, "Something went wrong"}

	case errors.Is(err, service.ErrProductNotFound):
		return ErrorInfo{http.StatusNotFound, ProductNotFound, "Product not found"}
	case errors.Is(err, service.ErrCartItemNotFound):
		return ErrorInfo{http.StatusNotFound, CartItemNotFound, "That item is not in your cart"}
	case errors.Is(err, service.ErrInvalidQuantity):
		return ErrorInfo{http.StatusBadRequest, ValidationInvalidQuantity, "Quantity must be between 1 and 999"}
	case errors.Is(err, service.ErrCartEmpty):
		return ErrorInfo{http.StatusConflict, CartEmpty, "Your cart is empty"}
	case errors.Is(err, service.ErrMissingCredentials):
		return ErrorInfo{http.StatusBadRequest, ValidationRequired, err.Error()}
	case errors.Is(err, service.ErrNotAuthenticated):
		return ErrorInfo{http.StatusUnauthorized, AuthUnauthorized, "Please sign in first"}

	case errors.Is(err, catalogapi.ErrNetworkError),
		errors.Is(err, catalogapi.ErrUnexpectedStatus),
		errors.Is(err, catalogapi.ErrInvalidResponse),
		errors.Is(err, supabase.ErrNetworkError),
		errors.Is(err, supabase.ErrInvalidResponse),
		errors.Is(err, context.DeadlineExceeded):
		return ErrorInfo{http.StatusBadGateway, UpstreamUnavailable, "A backing service is unavailable"}
	}

	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			return ErrorInfo{http.StatusUnauthorized, AuthUnauthorized, apiErr.Message}
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return ErrorInfo{http.StatusBadRequest, ValidationInvalidInput, apiErr.Error()}
		}
		return ErrorInfo{http.StatusBadGateway, UpstreamUnavailable, apiErr.Error()}
	}

	if resource != "" {
		return ErrorInfo{http.StatusInternalServerError, InternalServerError, "Failed to load " + resource}
	}
	return ErrorInfo{http.StatusInternalServerError, InternalServerError, "Something went wrong"}
}
