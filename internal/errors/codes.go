package errors

// Error codes returned in the "error" field of JSON API responses.
// Format: CATEGORY_SPECIFIC_DETAIL

const (
	// Authentication
	AuthUnauthorized = "AUTH_UNAUTHORIZED"

	// Validation
	ValidationInvalidInput    = "VALIDATION_INVALID_INPUT"
	ValidationInvalidQuantity = "VALIDATION_INVALID_QUANTITY"
	ValidationRequired        = "VALIDATION_REQUIRED"

	// Resources
	ResourceNotFound = "RESOURCE_NOT_FOUND"

	// Catalog
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// Cart
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartEmpty        = "CART_EMPTY"

	// Orders
	OrdersUnavailable = "ORDERS_UNAVAILABLE"

	// Upstream services
	UpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	// Server
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
