package sql

import (
	"bulletin/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SeedContent writes the bundle in a single transaction. With reset, all
// existing content rows are removed first; users are never touched.
func (r *GormRepository) SeedContent(ctx context.Context, bundle entity.ContentBundle, reset bool) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			for _, model := range []interface{}{&entity.DbAnnouncement{}, &entity.DbEvent{}, &entity.DbPoster{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return fmt.Errorf("clear content: %w", err)
				}
			}
		}

		for i := range bundle.Announcements {
			item := &bundle.Announcements[i]
			if item.ID == "" {
				item.ID = entity.NewContentID(entity.KindAnnouncement)
			}
			if item.BadgeVariant == "" {
				item.BadgeVariant = entity.BadgeVariantDefault
			}
		}
		for i := range bundle.Events {
			if bundle.Events[i].ID == "" {
				bundle.Events[i].ID = entity.NewContentID(entity.KindEvent)
			}
		}
		for i := range bundle.Posters {
			if bundle.Posters[i].ID == "" {
				bundle.Posters[i].ID = entity.NewContentID(entity.KindPoster)
			}
		}

		if len(bundle.Announcements) > 0 {
			if err := tx.Create(&bundle.Announcements).Error; err != nil {
				return fmt.Errorf("seed announcements: %w", err)
			}
		}
		if len(bundle.Events) > 0 {
			if err := tx.Create(&bundle.Events).Error; err != nil {
				return fmt.Errorf("seed events: %w", err)
			}
		}
		if len(bundle.Posters) > 0 {
			if err := tx.Create(&bundle.Posters).Error; err != nil {
				return fmt.Errorf("seed posters: %w", err)
			}
		}
		return nil
	})
}

// ImageURLInUse reports whether any event or poster other than exceptID
// references url.
func (r *GormRepository) ImageURLInUse(ctx context.Context, url, exceptID string) (bool, error) {
	if url == "" {
		return false, nil
	}
	for _, model := range []interface{}{&entity.DbEvent{}, &entity.DbPoster{}} {
		var count int64
		query := r.db.WithContext(ctx).Model(model).Where("image_url = ?", url)
		if exceptID != "" {
			query = query.Where("id <> ?", exceptID)
		}
		if err := query.Count(&count).Error; err != nil {
			return false, fmt.Errorf("count image references: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
