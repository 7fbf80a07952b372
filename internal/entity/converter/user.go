package converter

import "bulletin/internal/entity"

// UserToSummary maps a stored user to its public projection.
func UserToSummary(u *entity.DbUser) entity.UserSummary {
	if u == nil {
		return entity.UserSummary{}
	}
	return entity.UserSummary{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		IsActive:           u.IsActive,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// UsersToSummaries converts a slice of users.
func UsersToSummaries(users []entity.DbUser) []entity.UserSummary {
	summaries := make([]entity.UserSummary, len(users))
	for i := range users {
		summaries[i] = UserToSummary(&users[i])
	}
	return summaries
}

// UserToAuthUser builds the identity block of a login response.
func UserToAuthUser(u *entity.DbUser) entity.AuthUser {
	if u == nil {
		return entity.AuthUser{}
	}
	return entity.AuthUser{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
	}
}
