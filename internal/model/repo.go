package model

import (
	"bulletin/internal/entity"
	"bulletin/internal/model/sql"
	"context"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup or update targets a missing row.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrDuplicateEmail is returned when an email is already taken, ignoring case.
	ErrDuplicateEmail = sql.ErrDuplicateEmail
)

var _ Repository = (*sql.GormRepository)(nil)

// UserRepository is the credential store.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, patch entity.UserPatch) (*entity.DbUser, error)
	UpdatePassword(ctx context.Context, id uint, hash string, mustChange bool) error
	TouchLastLogin(ctx context.Context, id uint) error
	SoftDeleteUser(ctx context.Context, id uint) (bool, error)
	// GetUserByEmail matches case-insensitively. Inactive users are only
	// returned when includeInactive is set.
	GetUserByEmail(ctx context.Context, email string, includeInactive bool) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)
	CountActiveSuperAdmins(ctx context.Context) (int64, error)
}

type AnnouncementRepository interface {
	// ListAnnouncements orders by date descending.
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]entity.DbAnnouncement, error)
	GetAnnouncement(ctx context.Context, id string) (*entity.DbAnnouncement, error)
	CreateAnnouncement(ctx context.Context, item *entity.DbAnnouncement) error
	UpdateAnnouncement(ctx context.Context, id string, patch entity.AnnouncementPatch) (*entity.DbAnnouncement, error)
	DeleteAnnouncement(ctx context.Context, id string) (bool, error)
}

type EventRepository interface {
	// ListEvents orders by date ascending.
	ListEvents(ctx context.Context, activeOnly bool) ([]entity.DbEvent, error)
	GetEvent(ctx context.Context, id string) (*entity.DbEvent, error)
	CreateEvent(ctx context.Context, item *entity.DbEvent) error
	UpdateEvent(ctx context.Context, id string, patch entity.EventPatch) (*entity.DbEvent, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
}

type PosterRepository interface {
	// ListPosters orders by display order, then newest first.
	ListPosters(ctx context.Context, activeOnly bool) ([]entity.DbPoster, error)
	ListPostersByCategory(ctx context.Context, category string, activeOnly bool) ([]entity.DbPoster, error)
	// LatestPosterByCategory returns the most recently created active poster.
	LatestPosterByCategory(ctx context.Context, category string) (*entity.DbPoster, error)
	GetPoster(ctx context.Context, id string) (*entity.DbPoster, error)
	CreatePoster(ctx context.Context, item *entity.DbPoster) error
	UpdatePoster(ctx context.Context, id string, patch entity.PosterPatch) (*entity.DbPoster, error)
	DeletePoster(ctx context.Context, id string) (bool, error)
}

// Repository is the full persistence surface used by the HTTP layer.
type Repository interface {
	UserRepository
	AnnouncementRepository
	EventRepository
	PosterRepository

	// SeedContent inserts the bundle in one transaction, clearing existing
	// content first when reset is set.
	SeedContent(ctx context.Context, bundle entity.ContentBundle, reset bool) error
	// ImageURLInUse reports whether an event or poster other than exceptID
	// references url.
	ImageURLInUse(ctx context.Context, url, exceptID string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}
