package converter

import "bulletin/internal/entity"

func AnnouncementToDTO(a *entity.DbAnnouncement) entity.Announcement {
	return entity.Announcement{
		ID:           a.ID,
		Title:        a.Title,
		Date:         a.Date,
		Description:  a.Description,
		Icon:         a.Icon,
		Badge:        a.Badge,
		BadgeVariant: a.BadgeVariant,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func AnnouncementsToDTOs(items []entity.DbAnnouncement) []entity.Announcement {
	out := make([]entity.Announcement, len(items))
	for i := range items {
		out[i] = AnnouncementToDTO(&items[i])
	}
	return out
}

func EventToDTO(e *entity.DbEvent) entity.Event {
	return entity.Event{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Time:        e.Time,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func EventsToDTOs(items []entity.DbEvent) []entity.Event {
	out := make([]entity.Event, len(items))
	for i := range items {
		out[i] = EventToDTO(&items[i])
	}
	return out
}

func PosterToDTO(p *entity.DbPoster) entity.Poster {
	return entity.Poster{
		ID:           p.ID,
		Title:        p.Title,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		Description:  p.Description,
		DisplayOrder: p.DisplayOrder,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func PostersToDTOs(items []entity.DbPoster) []entity.Poster {
	out := make([]entity.Poster, len(items))
	for i := range items {
		out[i] = PosterToDTO(&items[i])
	}
	return out
}
