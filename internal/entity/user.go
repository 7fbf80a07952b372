package entity

import "time"

const (
	UserRoleSuperAdmin = "super_admin"
	UserRoleAdmin      = "admin"
)

// DbUser represents a persisted user account. Users are never hard-deleted;
// deactivation clears IsActive.
type DbUser struct {
	ID                 uint       `gorm:"primarykey"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	Email              string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash       string     `gorm:"column:password_hash;type:varchar(255);not null"`
	Name               string     `gorm:"column:name;type:varchar(255)"`
	Role               string     `gorm:"column:role;type:varchar(50);index;not null"`
	MustChangePassword bool       `gorm:"column:must_change_password;not null"`
	IsActive           bool       `gorm:"column:is_active;index;not null"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at"`
}

// TableName overrides default singular name.
func (DbUser) TableName() string {
	return "users"
}

// IsSuperAdmin reports whether the account holds the super_admin role.
func (u *DbUser) IsSuperAdmin() bool {
	return u != nil && u.Role == UserRoleSuperAdmin
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	switch role {
	case UserRoleAdmin, UserRoleSuperAdmin:
		return true
	default:
		return false
	}
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Role            string `form:"role"`
	Keyword         string `form:"keyword"`
	IncludeInactive bool   `form:"includeInactive"`
}
