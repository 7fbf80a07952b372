package api

import (
	"bulletin/internal/auth"
	"bulletin/internal/entity"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

const (
	currentUserContextKey = "current-user"
)

// RequestUser is the identity resolved from the bearer token. It reflects the
// claims at issuance time and is not refreshed from the store.
type RequestUser struct {
	ID    uint
	Email string
	Role  string
}

// IsSuperAdmin reports whether the token carries the super_admin role.
func (u *RequestUser) IsSuperAdmin() bool {
	if u == nil {
		return false
	}
	return u.Role == entity.UserRoleSuperAdmin
}

// AuthMiddleware rejects requests without a valid bearer token. A missing or
// malformed header yields AuthRequired; a token that fails verification
// yields SessionExpired.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			AbortWithError(c, http.StatusUnauthorized, ErrCodeAuthRequired, "authentication required")
			return
		}

		identity, valid := h.authManager.Verify(tokenString)
		if !valid {
			logrus.WithField("client_ip", c.ClientIP()).Debug("rejected invalid or expired token")
			AbortWithError(c, http.StatusUnauthorized, ErrCodeSessionExpired, "session expired or invalid, please log in again")
			return
		}

		c.Set(currentUserContextKey, requestUserFrom(identity))
		c.Next()
	}
}

// RequireSuperAdmin must run after AuthMiddleware.
func (h *HTTPHandler) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			AbortWithError(c, http.StatusUnauthorized, ErrCodeAuthRequired, "authentication required")
			return
		}
		if !user.IsSuperAdmin() {
			AbortWithError(c, http.StatusForbidden, ErrCodeForbidden, "super_admin role required")
			return
		}
		c.Next()
	}
}

type selfTargetFields struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// ForbidSelfTarget rejects attempts by the caller to change their own role
// or deactivate themselves. It compares the :id path parameter with the
// token identity and runs before any role check.
func (h *HTTPHandler) ForbidSelfTarget() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			AbortWithError(c, http.StatusUnauthorized, ErrCodeAuthRequired, "authentication required")
			return
		}
		targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || uint(targetID) != user.ID {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodDelete {
			AbortWithError(c, http.StatusBadRequest, ErrCodeSelfAction, "you cannot deactivate your own account")
			return
		}

		var fields selfTargetFields
		if err := c.ShouldBindBodyWith(&fields, binding.JSON); err == nil {
			if fields.Role != nil {
				AbortWithError(c, http.StatusBadRequest, ErrCodeSelfAction, "you cannot change your own role")
				return
			}
			if fields.IsActive != nil && !*fields.IsActive {
				AbortWithError(c, http.StatusBadRequest, ErrCodeSelfAction, "you cannot deactivate your own account")
				return
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated identity, or nil.
func CurrentUser(c *gin.Context) *RequestUser {
	value, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*RequestUser)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func requestUserFrom(identity *auth.Identity) *RequestUser {
	return &RequestUser{
		ID:    identity.UserID,
		Email: identity.Email,
		Role:  identity.Role,
	}
}
