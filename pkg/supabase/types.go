package supabase

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned when URL or anon key is missing
	ErrInvalidConfig = errors.New("invalid supabase config")

	// ErrNetworkError is returned when the service cannot be reached
	ErrNetworkError = errors.New("supabase network error")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded
	ErrInvalidResponse = errors.New("invalid supabase response body")
)

// APIError carries the service's own message so callers can show it verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase request failed with status %d", e.Status)
	}
	return e.Message
}

// Unauthorized reports whether the service rejected the caller's token.
func (e *APIError) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// errorBody covers the auth (error/error_description, msg) and PostgREST
// (message, code) error shapes.
type errorBody struct {
	Error            string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
	ErrorCode        string      `json:"error_code"`
	Msg              string      `json:"msg"`
	Message          string      `json:"message"`
	Code             interface{} `json:"code"`
}

func (b errorBody) toAPIError(status int) *APIError {
	apiErr := &APIError{Status: status, Code: b.ErrorCode}
	if apiErr.Code == "" {
		apiErr.Code = b.Error
	}
	if apiErr.Code == "" && b.Code != nil {
		apiErr.Code = fmt.Sprint(b.Code)
	}
	switch {
	case b.ErrorDescription != "":
		apiErr.Message = b.ErrorDescription
	case b.Msg != "":
		apiErr.Message = b.Msg
	case b.Message != "":
		apiErr.Message = b.Message
	default:
		apiErr.Message = b.Error
	}
	return apiErr
}

// User is the subset of the auth user object the storefront reads
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned by a successful password sign-in
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// Filter is an equality filter on one column (PostgREST "col=eq.value")
type Filter struct {
	Column string
	Value  string
}

func Eq(column, value string) Filter {
	return Filter{Column: column, Value: value}
}
