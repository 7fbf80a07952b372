package api

import (
	"bulletin/internal/auth"
	"bulletin/internal/entity"
	"bulletin/internal/entity/converter"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	users, err := h.repo.ListUsers(ctx, &query)
	if err != nil {
		storeFailure(c, err, "user", nil)
		return
	}
	c.JSON(http.StatusOK, converter.UsersToSummaries(users))
}

// GetUser returns any user, including deactivated ones.
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(user))
}

// CreateUser invites a user. The account must change its password on first
// login.
func (h *HTTPHandler) CreateUser(c *gin.Context) {
	var req entity.UserCreateRequest
	if !bindJSON(c, &req) || !validNewPassword(c, "password", req.Password) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to create user")
		return
	}

	user := &entity.DbUser{
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       hash,
		Name:               strings.TrimSpace(req.Name),
		Role:               req.Role,
		MustChangePassword: true,
		IsActive:           true,
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.repo.CreateUser(ctx, user); err != nil {
		storeFailure(c, err, "user", logrus.Fields{"email": user.Email})
		return
	}
	c.JSON(http.StatusCreated, converter.UserToSummary(user))
}

func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req entity.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	target, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}

	demotes := req.Role != nil && *req.Role != entity.UserRoleSuperAdmin
	deactivates := req.IsActive != nil && !*req.IsActive
	if (demotes || deactivates) && !h.guardLastSuperAdmin(ctx, c, target) {
		return
	}

	patch := entity.UserPatch{
		Role:     req.Role,
		IsActive: req.IsActive,
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		patch.Email = &email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}

	updated, err := h.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}
	c.JSON(http.StatusOK, converter.UserToSummary(updated))
}

// DeleteUser deactivates the account. Users are never removed.
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	target, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}
	if !h.guardLastSuperAdmin(ctx, c, target) {
		return
	}

	deleted, err := h.repo.SoftDeleteUser(ctx, id)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}
	if !deleted {
		NotFound(c, "user not found")
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "user deactivated"})
}

// ResetPassword sets a new password chosen by a super_admin and forces the
// user to change it on next login.
func (h *HTTPHandler) ResetPassword(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req entity.PasswordResetRequest
	if !bindJSON(c, &req) || !validNewPassword(c, "newPassword", req.NewPassword) {
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		InternalError(c, "failed to reset password")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.repo.UpdatePassword(ctx, id, hash, true); err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": id})
		return
	}
	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true, Message: "password reset"})
}

// guardLastSuperAdmin writes a 400 and returns false when target is the only
// active super_admin.
func (h *HTTPHandler) guardLastSuperAdmin(ctx context.Context, c *gin.Context, target *entity.DbUser) bool {
	if !target.IsSuperAdmin() || !target.IsActive {
		return true
	}
	count, err := h.repo.CountActiveSuperAdmins(ctx)
	if err != nil {
		storeFailure(c, err, "user", logrus.Fields{"user_id": target.ID})
		return false
	}
	if count <= 1 {
		BadRequest(c, ErrCodeLastSuperAdmin, "cannot demote or deactivate the last active super_admin")
		return false
	}
	return true
}
