package api

import (
	"bulletin/internal/auth"
	"bulletin/internal/entity"
	"bulletin/internal/entity/converter"
	"bulletin/internal/model"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx, cancel := h.requestContext(c)
	defer cancel()

	// Inactive users are filtered out here, so they fail like unknown emails.
	user, err := h.repo.GetUserByEmail(ctx, email, false)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			storeFailure(c, err, "user", logrus.Fields{"email": email})
			return
		}
		logrus.WithField("email", email).Warn("login attempt for unknown or inactive user")
		Unauthorized(c, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		logrus.WithField("email", email).Warn("password verification failed")
		Unauthorized(c, ErrCodeInvalidCredentials, "invalid email or password")
		return
	}

	token, expiresAt, err := h.authManager.Issue(auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to issue token")
		InternalError(c, "failed to create session")
		return
	}

	if err := h.repo.TouchLastLogin(ctx, user.ID); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	}

	c.JSON(http.StatusOK, entity.AuthLoginResponse{
		Success:   true,
		User:      converter.UserToAuthUser(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Me returns the caller's stored profile.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeAuthRequired, "authentication required")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	record, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": user.ID})
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(record))
}

// Verify confirms the presented token is valid and returns its user.
func (h *HTTPHandler) Verify(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeAuthRequired, "authentication required")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	record, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			Unauthorized(c, ErrCodeSessionExpired, "session expired or invalid, please log in again")
			return
		}
		storeFailure(c, err, "user", logrus.Fields{"user_id": user.ID})
		return
	}
	c.JSON(http.StatusOK, entity.AuthVerifyResponse{Valid: true, User: converter.UserToSummary(record)})
}

func (h *HTTPHandler) UpdateProfile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeAuthRequired, "authentication required")
		return
	}

	var req entity.ProfileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := entity.UserPatch{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		patch.Email = &email
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	updated, err := h.repo.UpdateUser(ctx, user.ID, patch)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": user.ID})
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(updated))
}

// ChangePassword re-verifies the current password before replacing it and
// clears the must-change flag.
func (h *HTTPHandler) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, ErrCodeAuthRequired, "authentication required")
		return
	}

	var req entity.PasswordChangeRequest
	if !bindJSON(c, &req) || !validNewPassword(c, "newPassword", req.NewPassword) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	record, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": user.ID})
		return
	}
	if !auth.CheckPassword(record.PasswordHash, req.CurrentPassword) {
		logrus.WithField("user_id", user.ID).Warn("password change with wrong current password")
		c.JSON(http.StatusBadRequest, APIError{
			Error:   "current password is incorrect",
			Code:    ErrCodeInvalidCredentials,
			Details: fieldErrors("currentPassword", "current password is incorrect"),
		})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to update password")
		return
	}
	if err := h.repo.UpdatePassword(ctx, user.ID, hash, false); err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": user.ID})
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "password updated"})
}
