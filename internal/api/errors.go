package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes carried in the "code" field of every error body.
const (
	ErrCodeValidation     = "ERR_VALIDATION"
	ErrCodeInvalidRequest = "ERR_INVALID_REQUEST"
	ErrCodeAuthRequired   = "ERR_AUTH_REQUIRED"
	ErrCodeSessionExpired = "ERR_SESSION_EXPIRED"
	ErrCodeForbidden      = "ERR_FORBIDDEN"
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeConflict       = "ERR_CONFLICT"
	ErrCodeUploadRejected = "ERR_UPLOAD_REJECTED"
	ErrCodeTooManyRequest = "ERR_TOO_MANY_REQUESTS"
	ErrCodeInternalError  = "ERR_INTERNAL_ERROR"
	ErrCodeUnavailable    = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeSelfAction         = "ERR_SELF_ACTION"
	ErrCodeLastSuperAdmin     = "ERR_LAST_SUPER_ADMIN"
)

// FieldError names one failing request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is the body of every error response.
type APIError struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

// ErrorResponse writes an error body with the given status.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Error: message,
		Code:  code,
	})
}

// AbortWithError writes the error body and stops the handler chain.
func AbortWithError(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, APIError{
		Error: message,
		Code:  code,
	})
}

// ValidationFailed 400 with per-field details.
func ValidationFailed(c *gin.Context, details []FieldError) {
	c.JSON(http.StatusBadRequest, APIError{
		Error:   "validation failed",
		Code:    ErrCodeValidation,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Conflict is reported as 400, e.g. for duplicate emails.
func Conflict(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// UploadRejected 400 for bad file type or size.
func UploadRejected(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeUploadRejected, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable 503
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeUnavailable, message)
}

// InvalidPayload 400 for bodies that are not valid JSON.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
