package entity

import "time"

// UserSummary is the public projection of a user. It never carries the
// password hash.
type UserSummary struct {
	ID                 uint       `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	MustChangePassword bool       `json:"mustChangePassword"`
	IsActive           bool       `json:"isActive"`
	LastLoginAt        *time.Time `json:"lastLoginAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// AuthUser is the identity block returned by login.
type AuthUser struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthLoginResponse struct {
	Success   bool      `json:"success"`
	User      AuthUser  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthVerifyResponse struct {
	Valid bool        `json:"valid"`
	User  UserSummary `json:"user"`
}

type ProfileUpdateRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
}

// Password fields are bound with a rune-count minimum only. The byte limit
// bcrypt imposes is checked by auth.ValidateNewPassword in the handlers.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UserCreateRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"omitempty,max=100"`
	Role     string `json:"role" binding:"required,oneof=admin super_admin"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin super_admin"`
	IsActive *bool   `json:"isActive"`
}

type PasswordResetRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// SuccessResponse acknowledges mutations that return no resource.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Announcement struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	Badge        string    `json:"badge"`
	BadgeVariant string    `json:"badgeVariant"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type AnnouncementCreateRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	Description  string `json:"description" binding:"required"`
	Icon         string `json:"icon" binding:"omitempty,max=100"`
	Badge        string `json:"badge" binding:"omitempty,max=100"`
	BadgeVariant string `json:"badgeVariant" binding:"omitempty,oneof=default secondary outline"`
	IsActive     *bool  `json:"isActive"`
}

type AnnouncementUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Date         *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description  *string `json:"description" binding:"omitempty,min=1"`
	Icon         *string `json:"icon" binding:"omitempty,max=100"`
	Badge        *string `json:"badge" binding:"omitempty,max=100"`
	BadgeVariant *string `json:"badgeVariant" binding:"omitempty,oneof=default secondary outline"`
	IsActive     *bool   `json:"isActive"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EventCreateRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,max=512"`
	IsActive    *bool  `json:"isActive"`
}

type EventUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	ImageURL    *string `json:"imageUrl" binding:"omitempty,max=512"`
	IsActive    *bool   `json:"isActive"`
}

type Poster struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"imageUrl"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PosterCreateRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Category     string `json:"category" binding:"required,oneof=service event theme"`
	ImageURL     string `json:"imageUrl" binding:"required,max=512"`
	Description  string `json:"description"`
	DisplayOrder *int   `json:"displayOrder" binding:"omitempty,min=0"`
	IsActive     *bool  `json:"isActive"`
}

type PosterUpdateRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=200"`
	Category     *string `json:"category" binding:"omitempty,oneof=service event theme"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,min=1,max=512"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
