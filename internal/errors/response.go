package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON API error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code, see codes.go
	Message string `json:"message"` // human-readable message
}

// RespondWithError writes the error envelope with the given status.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithParsedError maps err through ParseError and writes it.
func RespondWithParsedError(c *gin.Context, err error, resource string) {
	info := ParseError(err, resource)
	switch info.Status {
	case http.StatusBadRequest:
		BadRequest(c, info.Code, info.Message)
	case http.StatusUnauthorized:
		Unauthorized(c, info.Message)
	case http.StatusNotFound:
		NotFound(c, info.Code, info.Message)
	case http.StatusInternalServerError:
		InternalError(c, info.Message)
	default:
		RespondWithError(c, info.Status, info.Code, info.Message)
	}
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Please sign in first"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Invalid input",
		Fields:  fields,
	})
}
