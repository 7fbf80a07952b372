package entity

import "time"

// UserPatch lists the user columns an update may touch. Nil fields keep
// their stored value.
type UserPatch struct {
	Email              *string
	Name               *string
	Role               *string
	PasswordHash       *string
	MustChangePassword *bool
	IsActive           *bool
	LastLoginAt        *time.Time
}

// ToMap converts the patch to a GORM update map.
func (u UserPatch) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	if u.MustChangePassword != nil {
		updates["must_change_password"] = *u.MustChangePassword
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.LastLoginAt != nil {
		updates["last_login_at"] = *u.LastLoginAt
	}
	return updates
}

// IsEmpty reports whether no field is set.
func (u UserPatch) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// AnnouncementPatch is a partial announcement update.
type AnnouncementPatch struct {
	Title        *string
	Date         *string
	Description  *string
	Icon         *string
	Badge        *string
	BadgeVariant *string
	IsActive     *bool
}

func (u AnnouncementPatch) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Date != nil {
		updates["date"] = *u.Date
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Icon != nil {
		updates["icon"] = *u.Icon
	}
	if u.Badge != nil {
		updates["badge"] = *u.Badge
	}
	if u.BadgeVariant != nil {
		updates["badge_variant"] = *u.BadgeVariant
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// EventPatch is a partial event update.
type EventPatch struct {
	Title       *string
	Date        *string
	Time        *string
	Description *string
	ImageURL    *string
	IsActive    *bool
}

func (u EventPatch) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Date != nil {
		updates["date"] = *u.Date
	}
	if u.Time != nil {
		updates["time"] = *u.Time
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.ImageURL != nil {
		updates["image_url"] = *u.ImageURL
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}

// PosterPatch is a partial poster update.
type PosterPatch struct {
	Title        *string
	Category     *string
	ImageURL     *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

func (u PosterPatch) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.Category != nil {
		updates["category"] = *u.Category
	}
	if u.ImageURL != nil {
		updates["image_url"] = *u.ImageURL
	}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.DisplayOrder != nil {
		updates["display_order"] = *u.DisplayOrder
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	return updates
}
