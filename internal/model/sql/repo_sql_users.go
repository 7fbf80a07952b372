package sql

import (
	"bulletin/internal/entity"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateUser persists a new user record with a lower-cased email.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	user.Email = normalizeEmail(user.Email)

	taken, err := r.emailTaken(ctx, user.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateUser coalesces the patch onto an existing user and returns the
// reloaded row.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, patch entity.UserPatch) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
		taken, err := r.emailTaken(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
	}

	updates := patch.ToMap()
	updates["updated_at"] = r.db.NowFunc()
	result := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, result.Error
	}
	// MySQL reports zero affected rows for no-op updates, so existence is
	// decided by the reload.
	return r.GetUserByID(ctx, id)
}

// UpdatePassword replaces the stored hash.
func (r *GormRepository) UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error {
	if strings.TrimSpace(hash) == "" {
		return fmt.Errorf("password hash is empty")
	}
	_, err := r.UpdateUser(ctx, id, entity.UserPatch{PasswordHash: &hash, MustChangePassword: &mustChange})
	return err
}

// TouchLastLogin stamps last_login_at with the current time.
func (r *GormRepository) TouchLastLogin(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	now := r.db.NowFunc()
	result := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).
		UpdateColumn("last_login_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteUser deactivates a user. It reports false for unknown ids.
func (r *GormRepository) SoftDeleteUser(ctx context.Context, id uint) (bool, error) {
	inactive := false
	if _, err := r.UpdateUser(ctx, id, entity.UserPatch{IsActive: &inactive}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetUserByEmail loads a user by email, ignoring case.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string, includeInactive bool) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, gorm.ErrRecordNotFound
	}

	query := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalized)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var user entity.DbUser
	if err := query.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID loads a user by ID regardless of its active flag.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns users newest first.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})
	if params != nil {
		if trimmed := strings.TrimSpace(params.Role); trimmed != "" {
			query = query.Where("role = ?", trimmed)
		}
		if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", kw, kw)
		}
		if !params.IncludeInactive {
			query = query.Where("is_active = ?", true)
		}
	}

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Order("id DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns total user count.
func (r *GormRepository) CountUsers(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DbUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveSuperAdmins counts users able to administer other users.
func (r *GormRepository) CountActiveSuperAdmins(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("repository not initialised")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbUser{}).
		Where("role = ? AND is_active = ?", entity.UserRoleSuperAdmin, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) emailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("LOWER(email) = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
