package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		write          func(c *gin.Context)
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "BadRequest",
			write:          func(c *gin.Context) { BadRequest(c, ErrCodeInvalidRequest, "bad input") },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
			expectedMsg:    "bad input",
		},
		{
			name:           "AuthRequired",
			write:          func(c *gin.Context) { Unauthorized(c, ErrCodeAuthRequired, "authentication required") },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   ErrCodeAuthRequired,
			expectedMsg:    "authentication required",
		},
		{
			name:           "SessionExpired",
			write:          func(c *gin.Context) { Unauthorized(c, ErrCodeSessionExpired, "session expired") },
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   ErrCodeSessionExpired,
			expectedMsg:    "session expired",
		},
		{
			name:           "Forbidden",
			write:          func(c *gin.Context) { Forbidden(c, "no") },
			expectedStatus: http.StatusForbidden,
			expectedCode:   ErrCodeForbidden,
			expectedMsg:    "no",
		},
		{
			name:           "NotFound",
			write:          func(c *gin.Context) { NotFound(c, "event not found") },
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeNotFound,
			expectedMsg:    "event not found",
		},
		{
			name:           "Conflict",
			write:          func(c *gin.Context) { Conflict(c, ErrCodeEmailExists, "email already registered") },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeEmailExists,
			expectedMsg:    "email already registered",
		},
		{
			name:           "UploadRejected",
			write:          func(c *gin.Context) { UploadRejected(c, "file too large") },
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeUploadRejected,
			expectedMsg:    "file too large",
		},
		{
			name:           "InternalError",
			write:          func(c *gin.Context) { InternalError(c, "internal error") },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "internal error",
		},
		{
			name:           "InvalidPayload",
			write:          InvalidPayload,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.write(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
			if response.Error != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, response.Error)
			}
			if response.Details != nil {
				t.Errorf("expected no details, got %v", response.Details)
			}
		})
	}
}

func TestValidationFailedIncludesDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ValidationFailed(c, []FieldError{{Field: "email", Message: "email is required"}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if raw["error"] != "validation failed" || raw["code"] != ErrCodeValidation {
		t.Fatalf("unexpected body %v", raw)
	}
	details, ok := raw["details"].([]any)
	if !ok || len(details) != 1 {
		t.Fatalf("expected one detail, got %v", raw["details"])
	}
	first := details[0].(map[string]any)
	if first["field"] != "email" || first["message"] != "email is required" {
		t.Fatalf("unexpected detail %v", first)
	}
}
