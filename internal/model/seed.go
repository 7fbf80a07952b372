package model

import (
	"bulletin/internal/auth"
	"bulletin/internal/config"
	"bulletin/internal/entity"
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// EnsureBootstrapAdmin creates the configured super_admin when no user holds
// that email yet. It is a no-op when the bootstrap credentials are unset.
func EnsureBootstrapAdmin(ctx context.Context, repo UserRepository, cfg config.Config) (bool, error) {
	if repo == nil {
		return false, nil
	}
	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminEmail))
	if email == "" || cfg.BootstrapAdminPassword == "" {
		return false, nil
	}

	existing, err := repo.GetUserByEmail(ctx, email, true)
	switch {
	case err == nil && existing != nil:
		return false, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return false, err
	}

	if _, err := CreateSuperAdmin(ctx, repo, email, cfg.BootstrapAdminName, cfg.BootstrapAdminPassword, false); err != nil {
		return false, err
	}
	logrus.WithField("email", email).Info("bootstrap super_admin created")
	return true, nil
}

// CreateSuperAdmin hashes the password and stores an active super_admin.
func CreateSuperAdmin(ctx context.Context, repo UserRepository, email, name, password string, mustChange bool) (*entity.DbUser, error) {
	if err := auth.ValidateNewPassword(password); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &entity.DbUser{
		Email:              email,
		Name:               strings.TrimSpace(name),
		PasswordHash:       hash,
		Role:               entity.UserRoleSuperAdmin,
		MustChangePassword: mustChange,
		IsActive:           true,
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DemoContent is the sample bundle written by the seed command.
func DemoContent() entity.ContentBundle {
	return entity.ContentBundle{
		Announcements: []entity.DbAnnouncement{
			{
				Title:        "Welcome to the new season",
				Date:         "2025-09-01",
				Description:  "Registration for the autumn programme is now open.",
				Icon:         "megaphone",
				Badge:        "New",
				BadgeVariant: entity.BadgeVariantDefault,
				IsActive:     true,
			},
			{
				Title:        "Office hours change",
				Date:         "2025-08-15",
				Description:  "The front desk now opens at 9:30 on weekdays.",
				Icon:         "clock",
				Badge:        "Notice",
				BadgeVariant: entity.BadgeVariantSecondary,
				IsActive:     true,
			},
			{
				Title:        "Volunteer call",
				Date:         "2025-07-20",
				Description:  "We are looking for helpers for the winter fair.",
				Icon:         "hand-heart",
				BadgeVariant: entity.BadgeVariantOutline,
				IsActive:     true,
			},
		},
		Events: []entity.DbEvent{
			{
				Title:       "Community dinner",
				Date:        "2025-10-04",
				Time:        "6-9PM",
				Description: "Bring a dish to share.",
				IsActive:    true,
			},
			{
				Title:       "Winter fair",
				Date:        "2025-12-13",
				Time:        "10AM-4PM",
				Description: "Stalls, music and food in the main hall.",
				IsActive:    true,
			},
		},
		Posters: []entity.DbPoster{
			{
				Title:        "Sunday service",
				Category:     entity.PosterCategoryService,
				ImageURL:     "/uploads/services/sunday.jpg",
				Description:  "Every Sunday at 10AM.",
				DisplayOrder: 1,
				IsActive:     true,
			},
			{
				Title:        "Autumn theme",
				Category:     entity.PosterCategoryTheme,
				ImageURL:     "/uploads/theme/autumn.jpg",
				Description:  "This season's theme.",
				DisplayOrder: 0,
				IsActive:     true,
			},
		},
	}
}
